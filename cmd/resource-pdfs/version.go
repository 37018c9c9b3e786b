package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of resource-pdfs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "resource-pdfs %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
