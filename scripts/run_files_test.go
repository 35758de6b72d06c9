package scripts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, path string, src string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunFiles(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	var paths []string
	for i := range 8 {
		path := filepath.Join(dir, fmt.Sprintf("%d.star", i))
		writeScript(t, path, fmt.Sprintf(`
def check(c):
    if c != %d:
        fail("got %%d" %% c)
    if code() != 0:
        fail("code() got %%d" %% code())

def body():
    protect(lambda: throw(%d))

protect(body, catch={%d: check})
`, i+1, i+1, i+1))
		paths = append(paths, path)
	}

	if err := env.runFiles(context.Background(), paths, 3); err != nil {
		t.Fatal(err)
	}
}

func TestRunFilesError(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.star")
	writeScript(t, good, `x = 1`)
	bad := filepath.Join(dir, "bad.star")
	writeScript(t, bad, `fail("bad script")`)

	err := env.runFiles(context.Background(), []string{good, bad}, 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "bad.star") {
		t.Fatalf("got %v", err)
	}
	if strings.Contains(err.Error(), "good.star") {
		t.Fatalf("got %v", err)
	}
}
