package weave

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestCaretErrorRenderingSnapshots pins the exact caret-pointing layout a
// host sees from a failed Parse or Call, the way the teacher's fixture
// suite snapshots formatted error output rather than asserting on it field
// by field.
func TestCaretErrorRenderingSnapshots(t *testing.T) {
	lang := New()
	_, cerr := lang.Parse("#broken x ->")
	if cerr == nil {
		t.Fatal("expected a CompileError for truncated source")
	}
	snaps.MatchSnapshot(t, "compile_error", cerr.Error())

	script, cerr := lang.Parse(`#bad p -> p + "x";`)
	if cerr != nil {
		t.Fatalf("unexpected parse error: %v", cerr)
	}
	handle, rerr := script.Function("bad")
	if rerr != nil {
		t.Fatalf("unexpected error: %v", rerr)
	}
	_, rerr = handle.Arg(Int(1)).Call()
	if rerr == nil {
		t.Fatal("expected a RuntimeError for mismatched operand types")
	}
	snaps.MatchSnapshot(t, "runtime_error", rerr.Error())
}
