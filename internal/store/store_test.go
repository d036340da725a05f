package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScriptlet(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_skipsNonScriptFiles(t *testing.T) {
	dir := t.TempDir()
	writeScriptlet(t, dir, "a.risor", "1")
	writeScriptlet(t, dir, "README.md", "not a scriptlet")

	s, err := Discover(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	preinited, err := s.Preinit()
	if err != nil {
		t.Fatal(err)
	}
	if len(preinited) != 1 || preinited[0].Path != "a.risor" {
		t.Fatalf("got %+v", preinited)
	}
}

func TestDiscover_missingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), nil)
	if _, ok := err.(*NoVexesDirError); !ok {
		t.Fatalf("expected *NoVexesDirError, got %v (%T)", err, err)
	}
}

func TestPreinit_ordersLoadsBeforeLoaders(t *testing.T) {
	dir := t.TempDir()
	writeScriptlet(t, dir, "base.risor", "x := 1")
	writeScriptlet(t, dir, "mid.risor", `load("./base.risor", "x")`)
	writeScriptlet(t, dir, "top.risor", `load("./mid.risor", "x")`)

	s, err := Discover(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	ordered, err := s.Preinit()
	if err != nil {
		t.Fatal(err)
	}

	index := make(map[string]int, len(ordered))
	for i, scriptlet := range ordered {
		index[scriptlet.Path] = i
	}
	if index["base.risor"] >= index["mid.risor"] || index["mid.risor"] >= index["top.risor"] {
		t.Fatalf("expected base < mid < top, got %v", index)
	}
}

func TestPreinit_detectsCycle(t *testing.T) {
	dir := t.TempDir()
	writeScriptlet(t, dir, "a.risor", `load("./b.risor", "x")`)
	writeScriptlet(t, dir, "b.risor", `load("./a.risor", "x")`)

	s, err := Discover(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Preinit()
	cycleErr, ok := err.(*ImportCycleError)
	if !ok {
		t.Fatalf("expected *ImportCycleError, got %v (%T)", err, err)
	}
	if len(cycleErr.Cycle) < 2 {
		t.Fatalf("expected a cycle with at least 2 members, got %v", cycleErr.Cycle)
	}
}

func TestPreinit_unknownModule(t *testing.T) {
	dir := t.TempDir()
	writeScriptlet(t, dir, "a.risor", `load("./missing.risor", "x")`)

	s, err := Discover(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Preinit()
	if _, ok := err.(*NoSuchModuleError); !ok {
		t.Fatalf("expected *NoSuchModuleError, got %v (%T)", err, err)
	}
}
