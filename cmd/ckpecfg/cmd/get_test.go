package cmd

import (
	"testing"
)

func TestGetCommand(t *testing.T) {
	path := writeSampleFile(t, "CreationKitPlatformExtended.ini")

	tests := []struct {
		name        string
		args        []string
		comment     bool
		json        bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "prints the value",
			args:        []string{path, "CrashDumps", "bGenerateCrashDumps"},
			wantContain: []string{"true"},
		},
		{
			name:        "prints the comment when asked",
			args:        []string{path, "CrashDumps", "uMaxDumps"},
			comment:     true,
			wantContain: []string{"5", "keep this many"},
		},
		{
			name:        "json output",
			args:        []string{path, "CrashDumps", "bGenerateCrashDumps"},
			json:        true,
			wantContain: []string{`"value": "true"`, `"line": 4`},
		},
		{
			name:    "unknown key fails",
			args:    []string{path, "CrashDumps", "uMissing"},
			wantErr: true,
		},
		{
			name:    "unknown section fails",
			args:    []string{path, "Nowhere", "uMaxDumps"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			getComment = tt.comment
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runGet(tt.args)
			})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got output %q", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("runGet failed: %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestGetLastDuplicateWins(t *testing.T) {
	resetFlags()
	path := writeSampleFile(t, "dup.ini")
	appendLines(t, path, "\n[CrashDumps]\nuMaxDumps=9\n")

	output, err := captureOutput(t, func() error {
		return runGet([]string{path, "CrashDumps", "uMaxDumps"})
	})
	if err != nil {
		t.Fatalf("runGet failed: %v", err)
	}
	if got := output; got != "9\n" {
		t.Errorf("expected the later occurrence to win, got %q", got)
	}
}
