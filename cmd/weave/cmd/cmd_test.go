package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.wv")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write test script: %v", err)
	}
	return path
}

func TestRunParseReportsFunctions(t *testing.T) {
	path := writeScript(t, "#add (a, b) -> a + b;\n")
	if err := runParse(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunParseFailsOnMissingFile(t *testing.T) {
	if err := runParse(nil, []string{filepath.Join(t.TempDir(), "missing.wv")}); err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}

func TestRunParseFailsOnSyntaxError(t *testing.T) {
	path := writeScript(t, "#broken x ->")
	if err := runParse(nil, []string{path}); err == nil {
		t.Fatal("expected an error for a truncated clause body")
	}
}

func TestRunScriptCallsNamedFunction(t *testing.T) {
	path := writeScript(t, "#double x -> x * 2;\n")

	prevFunc, prevArgs, prevTrace, prevDepth := runFunc, runArgs, runTrace, runMaxDepth
	defer func() { runFunc, runArgs, runTrace, runMaxDepth = prevFunc, prevArgs, prevTrace, prevDepth }()

	runFunc = "double"
	runArgs = []string{"21"}
	runTrace = false
	runMaxDepth = 10000

	if err := runScript(nil, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunScriptFailsOnUnknownFunction(t *testing.T) {
	path := writeScript(t, "#id x -> x;\n")

	prevFunc, prevArgs := runFunc, runArgs
	defer func() { runFunc, runArgs = prevFunc, prevArgs }()

	runFunc = "nope"
	runArgs = nil

	if err := runScript(nil, []string{path}); err == nil {
		t.Fatal("expected an error calling an undefined function")
	}
}

func TestRunScriptFailsOnInvalidJSONArg(t *testing.T) {
	path := writeScript(t, "#id x -> x;\n")

	prevFunc, prevArgs := runFunc, runArgs
	defer func() { runFunc, runArgs = prevFunc, prevArgs }()

	runFunc = "id"
	runArgs = []string{"not-json"}

	if err := runScript(nil, []string{path}); err == nil {
		t.Fatal("expected an error for a malformed --arg value")
	}
}
