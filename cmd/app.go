package cmd

import (
	"github.com/spf13/cobra"
)

// appCmd represents the app command
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "used to run the edusuite service",
	Long: `The edusuite service is a json server backing the school administration
dashboard (this command is not ran directly)`,
}

func init() {
	rootCmd.AddCommand(appCmd)
}
