package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parcours-dev/parcours/pkg/flow"
	"github.com/parcours-dev/parcours/pkg/routing"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the route tree and flow definition for defects",
	Long:  `Runs the startup checks without starting the server: duplicate page ids, missing language templates, unrouted or unreachable flow states, and cancel-path violations.`,
	Run: func(cmd *cobra.Command, args []string) {
		tree := routing.Tree()
		resolver := routing.NewResolver(tree)

		failed := false
		if err := routing.CheckTree(tree); err != nil {
			fmt.Printf("Route tree: %v\n", err)
			failed = true
		} else {
			fmt.Println("Route tree: OK")
		}

		def := flow.InPerson()
		if err := routing.CheckFlow(def, resolver); err != nil {
			fmt.Printf("Flow %q: %v\n", def.ID, err)
			failed = true
		} else {
			fmt.Printf("Flow %q: OK (%d states)\n", def.ID, len(def.States))
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
