package cmd

import (
	api "github.com/edusuite/edusuite/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the api service",
	Long:  `Runs the api service`,
	Run: func(cmd *cobra.Command, args []string) {
		api.Serve()
	},
}

func init() {
	appCmd.AddCommand(serveCmd)
}
