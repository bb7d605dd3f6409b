package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "2024타경10001_감정평가서.pdf"))
	writeFile(t, filepath.Join(root, "sub", "2024타경10002_감정평가서.PDF"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, ".hidden.pdf"))
	writeFile(t, filepath.Join(root, ".cache", "stale.pdf"))
	writeFile(t, filepath.Join(root, "photos", "2024타경10001_0.png"))
	writeFile(t, filepath.Join(root, "extracted", "leftover.pdf"))

	got, err := ScanDirectory(root, "extracted")
	if err != nil {
		t.Fatalf("ScanDirectory() error: %v", err)
	}
	want := []string{
		filepath.Join(root, "2024타경10001_감정평가서.pdf"),
		filepath.Join(root, "sub", "2024타경10002_감정평가서.PDF"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanDirectory() = %v, want %v", got, want)
	}
}

func TestScanDirectoryEmptyRoot(t *testing.T) {
	if _, err := ScanDirectory("  "); err == nil {
		t.Error("ScanDirectory() accepted blank root")
	}
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/in/report.pdf", true},
		{"/in/report.PDF", true},
		{"/in/photo.png", false},
		{"/in/noext", false},
	}
	for _, tt := range tests {
		if got := allowed(tt.path); got != tt.want {
			t.Errorf("allowed(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
