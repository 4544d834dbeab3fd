package session_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"ckpecfg/internal/session"
	"ckpecfg/pkg/ini"
)

const sample = `; CKPE configuration
[CrashDumps]
bGenerateCrashDumps=true

[Log]
uLevel=3			; 0-5
`

// Helper to open a session over a fresh temp copy of content
func openTempSession(t *testing.T, content string) *session.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CreationKitPlatformExtended.ini")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	s, err := session.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func readFileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return string(data)
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := session.Open(context.Background(), filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Error("Open() expected error for missing file")
	}
}

func TestSetAndValue(t *testing.T) {
	s := openTempSession(t, sample)

	if s.Dirty() {
		t.Error("Dirty() = true on a fresh session")
	}

	if err := s.Set("CrashDumps", "bGenerateCrashDumps", "false"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !s.Dirty() {
		t.Error("Dirty() = false after Set")
	}
	if v, ok := s.Value("CrashDumps", "bGenerateCrashDumps"); !ok || v != "false" {
		t.Errorf("Value() = %q, %v, want pending edit", v, ok)
	}
	// An untouched entry still reports its parsed value.
	if v, ok := s.Value("Log", "uLevel"); !ok || v != "3" {
		t.Errorf("Value() = %q, %v, want parsed value", v, ok)
	}
}

func TestSetBackToParsedValueClearsEdit(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Set("Log", "uLevel", "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("Log", "uLevel", "3"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if s.Dirty() {
		t.Errorf("Dirty() = true after reverting, edits = %+v", s.Edits())
	}
}

func TestSetUnknownEntry(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Set("Log", "uMissing", "1"); err == nil {
		t.Error("Set() expected error for unknown entry")
	}
	if err := s.Set("Nope", "uLevel", "1"); err == nil {
		t.Error("Set() expected error for unknown section")
	}
}

func TestRender(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Set("Log", "uLevel", "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	out, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `; CKPE configuration
[CrashDumps]
bGenerateCrashDumps=true

[Log]
uLevel=5			; 0-5
`
	if out.Text() != want {
		t.Errorf("Render() = %q, want %q", out.Text(), want)
	}
	// Rendering must not consume the pending edits.
	if !s.Dirty() {
		t.Error("Dirty() = false after Render")
	}
}

func TestSave(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Set("CrashDumps", "bGenerateCrashDumps", "false"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	content := readFileContent(t, s.Path())
	want := `; CKPE configuration
[CrashDumps]
bGenerateCrashDumps=false

[Log]
uLevel=3			; 0-5
`
	if content != want {
		t.Errorf("Save() wrote %q, want %q", content, want)
	}
	if s.Dirty() {
		t.Error("Dirty() = true after Save")
	}
	// The session now reflects the saved state as parsed values.
	if v, ok := s.Value("CrashDumps", "bGenerateCrashDumps"); !ok || v != "false" {
		t.Errorf("Value() after Save = %q, %v", v, ok)
	}
	if s.LastSaved().IsZero() {
		t.Error("LastSaved() still zero after Save")
	}
}

func TestSaveWithoutEditsKeepsBytes(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if content := readFileContent(t, s.Path()); content != sample {
		t.Errorf("Save() without edits changed the file: %q", content)
	}
}

func TestReloadKeepsResolvableEdits(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Set("Log", "uLevel", "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// The file gains lines above the edited entry, moving it down.
	external := `; CKPE configuration
; new header comment
[CrashDumps]
bGenerateCrashDumps=true
bUseOutputDebugString=false

[Log]
uLevel=3			; 0-5
`
	if err := os.WriteFile(s.Path(), []byte(external), 0644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}

	dropped, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if len(dropped) != 0 {
		t.Errorf("Reload() dropped = %+v, want none", dropped)
	}
	if v, _ := s.Value("Log", "uLevel"); v != "5" {
		t.Errorf("Value() after Reload = %q, want pending edit to survive", v)
	}

	// Saving now rewrites the entry at its new location.
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	want := `; CKPE configuration
; new header comment
[CrashDumps]
bGenerateCrashDumps=true
bUseOutputDebugString=false

[Log]
uLevel=5			; 0-5
`
	if content := readFileContent(t, s.Path()); content != want {
		t.Errorf("Save() after Reload wrote %q, want %q", content, want)
	}
}

func TestReloadDropsVanishedEdits(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Set("Log", "uLevel", "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("[CrashDumps]\nbGenerateCrashDumps=true\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}

	dropped, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	want := []ini.Key{{Section: "Log", Name: "uLevel"}}
	if !reflect.DeepEqual(dropped, want) {
		t.Errorf("Reload() dropped = %+v, want %+v", dropped, want)
	}
	if s.Dirty() {
		t.Error("Dirty() = true after the only edit was dropped")
	}
}

func TestReloadClearsRedundantEdits(t *testing.T) {
	s := openTempSession(t, sample)

	if err := s.Set("Log", "uLevel", "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// The external change already applies the same value.
	external := `; CKPE configuration
[CrashDumps]
bGenerateCrashDumps=true

[Log]
uLevel=5			; 0-5
`
	if err := os.WriteFile(s.Path(), []byte(external), 0644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}

	dropped, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if len(dropped) != 0 {
		t.Errorf("Reload() dropped = %+v, want none", dropped)
	}
	if s.Dirty() {
		t.Error("Dirty() = true for an edit the file already has")
	}
}

func TestRestore(t *testing.T) {
	s := openTempSession(t, sample)

	applied, skipped := s.Restore(ini.Edits{
		{Section: "Log", Name: "uLevel"}:   "4",
		{Section: "Gone", Name: "uOrphan"}: "1",
	})
	if applied != 1 {
		t.Errorf("Restore() applied = %d, want 1", applied)
	}
	want := []ini.Key{{Section: "Gone", Name: "uOrphan"}}
	if !reflect.DeepEqual(skipped, want) {
		t.Errorf("Restore() skipped = %+v, want %+v", skipped, want)
	}
	if v, _ := s.Value("Log", "uLevel"); v != "4" {
		t.Errorf("Value() after Restore = %q, want 4", v)
	}
}
