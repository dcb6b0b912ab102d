package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-toml"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <path>",
	Short: "Print the value at a dotted key path",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, doc, err := loadDocument(args[0])
		if err != nil {
			os.Exit(1)
		}
		item := doc.Get(splitPath(args[1])...)
		if item == nil {
			fmt.Fprintf(os.Stderr, "%s: not found\n", args[1])
			os.Exit(1)
		}
		switch it := item.(type) {
		case *toml.Value:
			if s, err := it.AsString(); err == nil {
				fmt.Println(s)
				return
			}
			fmt.Println(it.Raw())
		default:
			fmt.Fprintf(os.Stderr, "%s is a %s, not a value\n", args[1], item.Kind())
			os.Exit(1)
		}
	},
}
