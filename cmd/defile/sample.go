package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"defile/config"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Write a sample config file unless one exists",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "defile.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.Sample(path, 0644); err != nil {
			return err
		}
		fmt.Printf("sample config at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
