package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-toml"
)

var setString bool

var setCmd = &cobra.Command{
	Use:   "set <file> <path> <value>",
	Short: "Set the value at a dotted key path and rewrite the file",
	Long: "Set the value at a dotted key path and rewrite the file. The value\n" +
		"is stored as a boolean, integer or float when it parses as one, and as\n" +
		"a string otherwise; --string forces a string. Formatting elsewhere in\n" +
		"the file is untouched.",
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		_, doc, err := loadDocument(args[0])
		if err != nil {
			os.Exit(1)
		}
		if err := doc.Insert(splitPath(args[1]), guessValue(args[2])); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := saveDocument(args[0], doc); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	setCmd.Flags().BoolVar(&setString, "string", false, "store the value as a string even if it looks like a number")
}

func guessValue(arg string) *toml.Value {
	if setString {
		return toml.NewString(arg)
	}
	switch arg {
	case "true":
		return toml.NewBool(true)
	case "false":
		return toml.NewBool(false)
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return toml.NewInteger(n)
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return toml.NewFloat(f)
	}
	return toml.NewString(arg)
}
