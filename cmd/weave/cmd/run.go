package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weave-lang/weave/pkg/weave"
)

var (
	runFunc     string
	runArgs     []string
	runTrace    bool
	runMaxDepth int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a weave source file and call one of its functions",
	Long: `Parse a weave source file and call one of its top-level functions.

Examples:
  # Call #main with no arguments
  weave run script.wv

  # Call a specific function with JSON-encoded arguments
  weave run script.wv --func double --arg 21`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFunc, "func", "f", "main", "name of the function to call")
	runCmd.Flags().StringArrayVarP(&runArgs, "arg", "a", nil, "JSON-encoded argument (may be repeated, applied in order)")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "enable execution trace")
	runCmd.Flags().IntVar(&runMaxDepth, "max-depth", 10000, "maximum call depth before aborting (protects against runaway recursion)")
}

func runScript(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	lang := weave.New(weave.WithTrace(runTrace), weave.WithMaxCallDepth(runMaxDepth))
	script, cerr := lang.Parse(string(data))
	if cerr != nil {
		fmt.Fprintln(os.Stderr, cerr.Error())
		return fmt.Errorf("parsing failed with %d error(s)", len(cerr.Errors))
	}

	handle, rerr := script.Function(runFunc)
	if rerr != nil {
		return fmt.Errorf("%s", rerr.Error())
	}
	for _, raw := range runArgs {
		v, err := weave.ArgumentFromJSON([]byte(raw))
		if err != nil {
			return fmt.Errorf("invalid --arg %q: %w", raw, err)
		}
		handle = handle.Arg(v)
	}

	result, rerr := handle.Call()
	if rerr != nil {
		fmt.Fprintln(os.Stderr, rerr.Error())
		return fmt.Errorf("execution failed")
	}

	out, err := result.ToJSON(true)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "warning: result has no JSON representation: %v\n", err)
		}
		fmt.Printf("%+v\n", result)
		return nil
	}
	fmt.Println(out)
	return nil
}
