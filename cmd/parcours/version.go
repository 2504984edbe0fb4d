package main

import (
	"fmt"

	"github.com/spf13/cobra"

	parcours "github.com/parcours-dev/parcours"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the parcours version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(parcours.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
