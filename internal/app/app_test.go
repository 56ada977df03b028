package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/adya/memwatch/internal/errors"
	"github.com/adya/memwatch/internal/observer"
	"github.com/adya/memwatch/internal/taskinfo"
	"github.com/adya/memwatch/internal/taskinfo/mocks"
)

func TestNew_ParsesFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	application, err := New(
		[]string{"memwatch", "-once", "-json", "-interval", "live"},
		io.Discard, WithQuerier(querier))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !application.Config.Once {
		t.Error("Once flag not parsed")
	}
	if !application.Config.JSON {
		t.Error("JSON flag not parsed")
	}
	if application.Config.Interval != observer.IntervalLive {
		t.Errorf("Interval = %v, want %v", application.Config.Interval, observer.IntervalLive)
	}
	if application.Querier != querier {
		t.Error("WithQuerier was not honored")
	}
}

func TestNew_EmptyArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	application, err := New(nil, io.Discard, WithQuerier(mocks.NewMockQuerier(ctrl)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if application.Config.Interval != observer.IntervalDefault {
		t.Errorf("Interval = %v, want the default cadence", application.Config.Interval)
	}
}

func TestNew_UnknownFlag(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"memwatch", "-no-such-flag"}, &errBuf)
	if err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
	if IsHelpError(err) {
		t.Error("an unknown flag should not count as a help request")
	}
}

func TestNew_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"memwatch", "-help"}, &errBuf)
	if !IsHelpError(err) {
		t.Fatalf("expected a help error, got %v", err)
	}
	if !strings.Contains(errBuf.String(), "-interval") {
		t.Errorf("usage text should list the flags, got:\n%s", errBuf.String())
	}
}

func TestNew_RejectsConflictingModes(t *testing.T) {
	_, err := New([]string{"memwatch", "-once", "-tui"}, io.Discard)
	if err == nil {
		t.Fatal("expected an error for conflicting modes")
	}

	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected apperrors.ConfigError, got %T: %v", err, err)
	}
}

func TestApplication_Run_Completion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	application, err := New([]string{"memwatch", "-completion", "bash"},
		io.Discard, WithQuerier(mocks.NewMockQuerier(ctrl)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "_memwatch_completions") {
		t.Errorf("Expected a bash completion script, got:\n%s", out.String())
	}
}

func TestApplication_Run_CompletionUnsupportedShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var errBuf bytes.Buffer
	application, err := New([]string{"memwatch", "-completion", "tcsh"},
		&errBuf, WithQuerier(mocks.NewMockQuerier(ctrl)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Fatalf("Run = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "unsupported shell") {
		t.Errorf("Expected an unsupported shell message, got:\n%s", errBuf.String())
	}
}

func TestApplication_Run_Once(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	gomock.InOrder(
		querier.EXPECT().TaskBasic(gomock.Any()).Return(taskinfo.BasicRecord{
			Resident:     1000,
			PeakResident: 2000,
			Virtual:      5000,
		}, nil),
		querier.EXPECT().TaskVM(gomock.Any()).Return(taskinfo.VMRecord{
			Internal:   300,
			Compressed: 200,
		}, nil),
		querier.EXPECT().PhysicalMemory(gomock.Any()).Return(uint64(10000), nil),
	)

	var errBuf bytes.Buffer
	application, err := New([]string{"memwatch", "-once", "-no-color"},
		&errBuf, WithQuerier(querier))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run = %d, want %d (stderr: %s)", code, apperrors.ExitSuccess, errBuf.String())
	}

	output := out.String()
	for _, want := range []string{"500 B", "9.8 KiB", "5.0%"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestApplication_Run_OnceQueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	querier.EXPECT().TaskBasic(gomock.Any()).Return(taskinfo.BasicRecord{},
		apperrors.NewQueryError(taskinfo.KindTaskBasic, errors.New("resource shortage")))

	var errBuf bytes.Buffer
	application, err := New([]string{"memwatch", "-once", "-no-color"},
		&errBuf, WithQuerier(querier))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitErrorQuery {
		t.Fatalf("Run = %d, want %d", code, apperrors.ExitErrorQuery)
	}
	if !strings.Contains(errBuf.String(), "Query failed") {
		t.Errorf("Expected a query failure message, got:\n%s", errBuf.String())
	}
}

func TestApplication_Run_WatchCountLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockQuerier(ctrl)
	querier.EXPECT().TaskBasic(gomock.Any()).Return(taskinfo.BasicRecord{Resident: 1000}, nil).AnyTimes()
	querier.EXPECT().TaskVM(gomock.Any()).Return(taskinfo.VMRecord{Internal: 300}, nil).AnyTimes()
	querier.EXPECT().PhysicalMemory(gomock.Any()).Return(uint64(10000), nil).AnyTimes()

	var errBuf bytes.Buffer
	application, err := New(
		[]string{"memwatch", "-quiet", "-count", "2", "-interval", "live"},
		&errBuf, WithQuerier(querier))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run = %d, want %d (stderr: %s)", code, apperrors.ExitSuccess, errBuf.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 quiet samples, got %d lines:\n%s", len(lines), out.String())
	}
	for i, line := range lines {
		if fields := strings.Fields(line); len(fields) != 6 {
			t.Errorf("line %d: expected 6 fields, got %d: %q", i, len(fields), line)
		}
	}
}

func TestHasVersionFlag(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want bool
	}{
		{"long form", []string{"-version"}, true},
		{"double dash", []string{"--version"}, true},
		{"short form", []string{"-V"}, true},
		{"lowercase v is verbose", []string{"-v"}, false},
		{"absent", []string{"-once", "-json"}, false},
		{"no args", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasVersionFlag(tc.args); got != tc.want {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.want)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)

	output := buf.String()
	if !strings.Contains(output, "memwatch") {
		t.Errorf("Expected the program name in %q", output)
	}
	if !strings.Contains(output, Version) {
		t.Errorf("Expected version %q in %q", Version, output)
	}
	if !strings.Contains(output, runtime.Version()) {
		t.Errorf("Expected the Go version in %q", output)
	}
}
