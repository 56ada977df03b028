package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the real binary and drives it through the flag
// surface: one-shot sampling, output modes, version and help, and the
// exit codes for configuration mistakes.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "memwatch"
	if runtime.GOOS == "windows" {
		binName = "memwatch.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD; the build must
	// happen from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/memwatch")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build memwatch: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Single Snapshot",
			args:     []string{"-once"},
			wantOut:  "used",
			wantCode: 0,
		},
		{
			name:     "Single Snapshot JSON",
			args:     []string{"-once", "-json"},
			wantOut:  "memory_snapshot",
			wantCode: 0,
		},
		{
			name:     "Single Snapshot Quiet",
			args:     []string{"-once", "-quiet"},
			wantOut:  "",
			wantCode: 0,
		},
		{
			name:     "Sample Limit",
			args:     []string{"-count", "2", "-interval", "live", "-quiet"},
			wantOut:  "",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "memwatch",
			wantCode: 0,
		},
		{
			name:     "Bash Completion",
			args:     []string{"-completion", "bash"},
			wantOut:  "complete -F",
			wantCode: 0,
		},
		{
			name:     "Conflicting Modes",
			args:     []string{"-once", "-tui"},
			wantOut:  "mutually exclusive",
			wantCode: 4,
		},
		{
			name:     "Unknown Interval",
			args:     []string{"-interval", "hourly"},
			wantOut:  "unknown interval",
			wantCode: 4,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"-no-such-flag"},
			wantOut:  "flag provided but not defined",
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Errorf("Exit code mismatch: got %d, want %d\nOutput: %s",
							exitErr.ExitCode(), tt.wantCode, outStr)
					}
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
