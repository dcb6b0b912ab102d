package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/kylelemons/godebug/diff"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parse a file and verify it round-trips byte-for-byte",
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, file := range args {
			src, doc, err := loadDocument(file)
			if err != nil {
				failed = true
				continue
			}
			if out := doc.String(); out != string(src) {
				color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%s: round-trip mismatch\n", file)
				fmt.Fprintln(os.Stderr, diff.Diff(string(src), out))
				failed = true
				continue
			}
			fmt.Printf("%s: ok\n", file)
		}
		if failed {
			os.Exit(1)
		}
	},
	Args: cobra.MinimumNArgs(1),
}
