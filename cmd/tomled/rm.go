package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <file> <path>",
	Short: "Remove the item at a dotted key path and rewrite the file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, doc, err := loadDocument(args[0])
		if err != nil {
			os.Exit(1)
		}
		if doc.Remove(splitPath(args[1])...) == nil {
			fmt.Fprintf(os.Stderr, "%s: not found\n", args[1])
			os.Exit(1)
		}
		if err := saveDocument(args[0], doc); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
