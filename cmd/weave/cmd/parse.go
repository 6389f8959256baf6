package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weave-lang/weave/pkg/weave"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse weave source and list the functions it defines",
	Long: `Parse weave source code and report either the functions it defines or
every parse error found, with a caret pointing at each failing column.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	lang := weave.New()
	script, cerr := lang.Parse(string(data))
	if cerr != nil {
		fmt.Fprintln(os.Stderr, cerr.Error())
		return fmt.Errorf("parsing failed with %d error(s)", len(cerr.Errors))
	}

	fmt.Println("Functions:")
	for _, name := range script.List() {
		fmt.Printf("  #%s\n", name)
	}
	return nil
}
