package db

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// Id lookups must hit the uuid columns directly so the primary keys and
// foreign-key indexes in the migrations stay usable.
var castPredicate = regexp.MustCompile(`\w+::text\s*(=|<>|IN\b)|::text\s*=\s*ANY`)

func TestStoresCompareTypedColumns(t *testing.T) {
	roots := []string{"../../domain", "../../transport/http/middleware"}
	checked := 0
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			checked++
			for i, line := range strings.Split(string(raw), "\n") {
				if castPredicate.MatchString(line) {
					t.Errorf("%s:%d compares a cast column: %s", path, i+1, strings.TrimSpace(line))
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("walk %s: %v", root, err)
		}
	}
	if checked == 0 {
		t.Fatal("no store sources found")
	}
}
