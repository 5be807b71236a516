package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "defile",
	Short: "Defile is a terminal photo gallery that loads as you scroll",
	Long:  `Defile pages through picsum.photos, fetching five more photos whenever the bottom of the gallery comes into view.`,
	RunE:  runGallery,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a yaml config file")
	rootCmd.Flags().String("base-url", "", "Photo list endpoint")
	rootCmd.Flags().String("log", "", "Log file, overrides config")
	rootCmd.Flags().String("metrics", "", "Serve /metrics on this address")
}
