package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeMappingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoadMappingOverlay(t *testing.T) {
	path := writeMappingFile(t, `{"주문번호": "b", "수량": "", "모르는항목": "Z"}`)

	m, err := LoadMapping(path, nil)
	if err != nil {
		t.Fatalf("LoadMapping failed: %v", err)
	}

	want := DefaultLaoraMapping()
	want["주문번호"] = "B"
	want["수량"] = ""
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Mapping mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m["모르는항목"]; ok {
		t.Error("Keys outside the template columns should be dropped")
	}
}

func TestLoadMappingCustomColumns(t *testing.T) {
	path := writeMappingFile(t, `{"picked": "C"}`)

	m, err := LoadMapping(path, []string{"picked", "untouched"})
	if err != nil {
		t.Fatalf("LoadMapping failed: %v", err)
	}
	want := LetterMapping{"picked": "C", "untouched": ""}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMappingInvalidLetter(t *testing.T) {
	path := writeMappingFile(t, `{"주문번호": "A1"}`)
	if _, err := LoadMapping(path, nil); err == nil {
		t.Error("Expected an error for a non-letter column reference")
	}
}

func TestLoadMappingMissingFile(t *testing.T) {
	if _, err := LoadMapping(filepath.Join(t.TempDir(), "absent.json"), nil); err == nil {
		t.Error("Expected an error for a missing mapping file")
	}
}

func TestSaveMappingRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")

	m := DefaultLaoraMapping()
	m["수량"] = "Q"
	m["메모"] = ""
	if err := SaveMapping(path, m); err != nil {
		t.Fatalf("SaveMapping failed: %v", err)
	}

	loaded, err := LoadMapping(path, nil)
	if err != nil {
		t.Fatalf("LoadMapping failed: %v", err)
	}
	if diff := cmp.Diff(m, loaded); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}
