package consultation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       string
	}{
		{"empty transcript", "", "T"},
		{"with transcript", "my arm itches", "T\n\nmy arm itches"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPrompt("T", tt.transcript); got != tt.want {
				t.Errorf("BuildPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultPrompt(t *testing.T) {
	if !strings.Contains(DefaultPrompt, "With what I see, I think you have") {
		t.Error("DefaultPrompt lost its opening sentence")
	}
	if strings.HasPrefix(DefaultPrompt, " ") || strings.HasPrefix(DefaultPrompt, "\n") {
		t.Error("DefaultPrompt has leading whitespace")
	}
}

func TestLoadPrompt(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	got, err := LoadPrompt("")
	if err != nil || got != DefaultPrompt {
		t.Errorf("LoadPrompt(\"\") = %q, %v", got, err)
	}

	got, err = LoadPrompt(write("ok.yml", "name: derm\nprompt: |\n  Look closely.\n"))
	if err != nil || got != "Look closely." {
		t.Errorf("LoadPrompt(ok) = %q, %v", got, err)
	}

	if _, err := LoadPrompt(write("empty.yml", "name: derm\n")); err == nil {
		t.Error("LoadPrompt(empty) expected error")
	}
	if _, err := LoadPrompt(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("LoadPrompt(missing) expected error")
	}
}
