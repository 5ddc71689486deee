package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestComputeHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.org")
	writeFile(t, path, "* header")

	hash, err := ComputeHash(path)
	if err != nil {
		t.Fatalf("ComputeHash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "sha256:") || len(hash) != len("sha256:")+64 {
		t.Errorf("Unexpected hash format: %q", hash)
	}
}

func TestHasChanged(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.org")
	out := filepath.Join(dir, "a.html")
	writeFile(t, src, "* header")
	writeFile(t, out, "<h1>header</h1>")

	st := NewState()

	changed, err := st.HasChanged(src, out, "html")
	if err != nil {
		t.Fatalf("HasChanged() error = %v", err)
	}
	if !changed {
		t.Error("Expected a new file to be changed")
	}

	if err := st.Update(src, out, "html"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if changed, _ := st.HasChanged(src, out, "html"); changed {
		t.Error("Expected file to be unchanged after update")
	}
	if changed, _ := st.HasChanged(src, out, "rst"); !changed {
		t.Error("Expected new settings to count as a change")
	}

	// Same content with a new mtime is still unchanged
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(src, future, future); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}
	if changed, _ := st.HasChanged(src, out, "html"); changed {
		t.Error("Expected touched file with the same content to be unchanged")
	}

	writeFile(t, src, "* other header")
	later := future.Add(time.Hour)
	if err := os.Chtimes(src, later, later); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}
	if changed, _ := st.HasChanged(src, out, "html"); !changed {
		t.Error("Expected modified file to be changed")
	}

	if err := st.Update(src, out, "html"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := os.Remove(out); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if changed, _ := st.HasChanged(src, out, "html"); !changed {
		t.Error("Expected a missing output to count as a change")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.org")
	writeFile(t, src, "* header")

	st := NewState()
	if err := st.Update(src, filepath.Join(dir, "a.html"), "html"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	statePath := filepath.Join(dir, "nested", "state.json")
	if err := st.Save(statePath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(statePath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(st.Files, loaded.Files); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	missing, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("Load() of a missing file error = %v", err)
	}
	if missing.Len() != 0 {
		t.Errorf("Expected empty state, got %d files", missing.Len())
	}
}

func TestForget(t *testing.T) {
	st := NewState()
	st.Files["a.org"] = &FileState{}
	st.Files["b.org"] = &FileState{}
	st.Files["c.org"] = &FileState{}

	removed := st.Forget([]string{"b.org"})
	if diff := cmp.Diff([]string{"a.org", "c.org"}, removed); diff != "" {
		t.Errorf("Forget() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := st.Get("b.org"); !ok {
		t.Error("Expected b.org to be kept")
	}
	if !st.GetMTime("a.org").IsZero() {
		t.Error("Expected zero mtime for a forgotten file")
	}
}
