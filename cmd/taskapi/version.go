package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the taskapi version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskapi %s\n", buildVersion)
	},
}

func init() {
	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate("taskapi {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
}
