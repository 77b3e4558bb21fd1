package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "edusuite",
	Short: "edusuite is the administration backend for a school: people, timetables, notices and finance",
	Long: `Edusuite serves a json api for school administration covering student and
staff records, class timetables built from registered time slots, the notice
board, exams and the finance ledgers`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
