package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-toml"
	"github.com/KimNorgaard/go-toml/token"
)

var rootCmd = &cobra.Command{
	Use:   "tomled",
	Short: "Tomled edits TOML files in place without disturbing their formatting.",
	Long: "Tomled edits TOML files in place without disturbing their formatting.\n" +
		"Comments, whitespace, quoting styles and key order are all preserved;\n" +
		"only the lines named by a command change.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadDocument reads and parses file, rendering any parse error with
// source context before returning it.
func loadDocument(file string) ([]byte, *toml.Document, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}
	doc, err := toml.Parse(src)
	if err != nil {
		renderParseError(file, src, err)
		return nil, nil, err
	}
	return src, doc, nil
}

// saveDocument writes the serialized document back, keeping the file's
// permission bits.
func saveDocument(file string, doc *toml.Document) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(file); err == nil {
		mode = fi.Mode().Perm()
	}
	return os.WriteFile(file, []byte(doc.String()), mode)
}

// renderParseError prints a parse error with its source line and a
// caret under the offending bytes.
func renderParseError(file string, src []byte, err error) {
	var perr *toml.ParseError
	if !errors.As(err, &perr) {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	line, col := token.Position(src, perr.Span.Start)
	bold := color.New(color.Bold)
	red := color.New(color.FgRed, color.Bold)

	bold.Fprintf(os.Stderr, "%s:%d:%d: ", file, line, col)
	red.Fprintf(os.Stderr, "%s: ", perr.Kind)
	fmt.Fprintln(os.Stderr, perr.Msg)

	lines := strings.Split(string(src), "\n")
	if line-1 < len(lines) {
		fmt.Fprintf(os.Stderr, "  %s\n", lines[line-1])
		width := max(perr.Span.End-perr.Span.Start, 1)
		red.Fprintf(os.Stderr, "  %s%s\n", strings.Repeat(" ", col-1), strings.Repeat("^", width))
	}
}

func splitPath(arg string) []string {
	return strings.Split(arg, ".")
}
