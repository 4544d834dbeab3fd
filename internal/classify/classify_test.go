package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"ckpecfg/internal/classify"
)

func TestClassify(t *testing.T) {
	rules := classify.DefaultRules()

	tests := []struct {
		name    string
		section string
		entry   string
		value   string
		want    classify.Kind
	}{
		{
			name:    "hotkeys section is always free text",
			section: "Hotkeys",
			entry:   "UIHotkeyF5",
			value:   "true",
			want:    classify.FreeText,
		},
		{
			name:    "log section is always free text",
			section: "Log",
			entry:   "uLevel",
			value:   "3",
			want:    classify.FreeText,
		},
		{
			name:    "tint mask resolution stays free text despite digits",
			section: "FaceGen",
			entry:   "uTintMaskResolution",
			value:   "512",
			want:    classify.FreeText,
		},
		{
			name:    "charset is an enum",
			section: "Charset",
			entry:   "nCharset",
			value:   "1",
			want:    classify.Enum,
		},
		{
			name:    "dark theme id is an enum",
			section: "UI",
			entry:   "uUIDarkThemeId",
			value:   "0",
			want:    classify.Enum,
		},
		{
			name:    "true is a boolean",
			section: "CrashDumps",
			entry:   "bGenerateCrashDumps",
			value:   "true",
			want:    classify.Boolean,
		},
		{
			name:    "false is a boolean regardless of case",
			section: "CrashDumps",
			entry:   "bUseVersionControl",
			value:   "False",
			want:    classify.Boolean,
		},
		{
			name:    "digits are an integer",
			section: "Graphics",
			entry:   "uWidth",
			value:   "1920",
			want:    classify.Integer,
		},
		{
			name:    "empty value falls back to free text",
			section: "Misc",
			entry:   "sEmpty",
			value:   "",
			want:    classify.FreeText,
		},
		{
			name:    "mixed digits fall back to free text",
			section: "Misc",
			entry:   "sVersion",
			value:   "12a",
			want:    classify.FreeText,
		},
		{
			name:    "negative numbers fall back to free text",
			section: "Misc",
			entry:   "nOffset",
			value:   "-5",
			want:    classify.FreeText,
		},
		{
			name:    "paths fall back to free text",
			section: "Log",
			entry:   "sOutputFile",
			value:   "CreationKitPlatformExtended.log",
			want:    classify.FreeText,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify.Classify(rules, tt.section, tt.entry, tt.value)
			if got.Kind != tt.want {
				t.Errorf("Classify() kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyIntegerBounds(t *testing.T) {
	got := classify.Classify(classify.DefaultRules(), "Graphics", "uWidth", "1920")
	if got.Min != 0 || got.Max != 999999 {
		t.Errorf("Classify() integer bounds = [%d, %d], want [0, 999999]", got.Min, got.Max)
	}
}

func TestClassifyCharsetTable(t *testing.T) {
	got := classify.Classify(classify.DefaultRules(), "Charset", "nCharset", "1")
	if len(got.Options) != 19 {
		t.Fatalf("Classify() charset options = %d, want 19", len(got.Options))
	}
	if got.Options[0].Label != "ANSI_CHARSET" || got.Options[0].Value != 0 {
		t.Errorf("Classify() first charset = %+v, want ANSI_CHARSET=0", got.Options[0])
	}
	if got.Options[18].Label != "BALTIC_CHARSET" || got.Options[18].Value != 186 {
		t.Errorf("Classify() last charset = %+v, want BALTIC_CHARSET=186", got.Options[18])
	}
}

func TestOptionIndex(t *testing.T) {
	c := classify.Classify(classify.DefaultRules(), "Charset", "nCharset", "128")

	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "exact value", value: "128", want: 3},
		{name: "surrounding whitespace tolerated", value: " 1 ", want: 1},
		{name: "unknown value", value: "999", want: -1},
		{name: "non numeric value", value: "SHIFTJIS", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.OptionIndex(tt.value); got != tt.want {
				t.Errorf("OptionIndex(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `textSections:
  - Custom
textEntries:
  - sSeed
enums:
  uUIDarkThemeId:
    - label: Light
      value: 0
    - label: Dark
      value: 1
maxInt: 100
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	rules, err := classify.LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	if got := classify.Classify(rules, "Custom", "uAnything", "5"); got.Kind != classify.FreeText {
		t.Errorf("Classify() merged section kind = %v, want FreeText", got.Kind)
	}
	if got := classify.Classify(rules, "Misc", "sSeed", "12345"); got.Kind != classify.FreeText {
		t.Errorf("Classify() merged entry kind = %v, want FreeText", got.Kind)
	}
	if got := classify.Classify(rules, "UI", "uUIDarkThemeId", "0"); len(got.Options) != 2 {
		t.Errorf("Classify() replaced enum options = %d, want 2", len(got.Options))
	}
	if got := classify.Classify(rules, "Charset", "nCharset", "1"); len(got.Options) != 19 {
		t.Errorf("Classify() built-in enum options = %d, want 19", len(got.Options))
	}
	if got := classify.Classify(rules, "Graphics", "uWidth", "50"); got.Max != 100 {
		t.Errorf("Classify() merged max = %d, want 100", got.Max)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := classify.LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadRules() expected error for missing file")
	}
}
