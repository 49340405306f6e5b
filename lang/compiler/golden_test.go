package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ohaddr/vesper/internal/filetest"
	"github.com/ohaddr/vesper/lang/parser"
)

// TestCompileErrorsGolden runs every testdata/errors/*.vsp file through the
// parser and compiler and diffs the resulting diagnostic text against its
// golden .vsp.err file. Run with -test.update-all-tests to regenerate.
func TestCompileErrorsGolden(t *testing.T) {
	dir := filepath.Join("testdata", "errors")
	update := false

	for _, fi := range filetest.SourceFiles(t, dir, ".vsp") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			prog, err := parser.Parse(src)
			if err == nil {
				_, err = Compile(prog)
			}
			if err == nil {
				t.Fatalf("expected a compile error for %s", fi.Name())
			}
			filetest.DiffErrors(t, fi, err.Error(), dir, &update)
		})
	}
}
