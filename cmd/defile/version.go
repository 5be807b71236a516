package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"defile"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of defile",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("defile version %s\n", defile.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
