package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeCommander records invocations instead of launching subprocesses.
type fakeCommander struct {
	calls []fakeCall
	// failOn maps a substring of the joined command line to an error.
	failOn map[string]error
}

type fakeCall struct {
	dir  string
	name string
	args []string
}

func (f *fakeCommander) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.calls = append(f.calls, fakeCall{dir: dir, name: name, args: args})
	line := name + " " + strings.Join(args, " ")
	for substr, err := range f.failOn {
		if strings.Contains(line, substr) {
			return "error output from " + substr, err
		}
	}
	return "ok", nil
}

func (f *fakeCommander) commandLines() []string {
	var lines []string
	for _, c := range f.calls {
		lines = append(lines, c.name+" "+strings.Join(c.args, " "))
	}
	return lines
}

// recordSink collects published results in order.
type recordSink struct {
	results []StepResult
}

func (s *recordSink) Publish(r StepResult) { s.results = append(s.results, r) }

func newTestRunner(cmd Commander, halt bool) *Runner {
	return NewRunner(Options{
		Python:        "python3",
		VenvName:      "venv",
		SrcName:       "src",
		HaltOnFailure: halt,
	}, cmd)
}

func TestRun_EmptySelectionCreatesVenvAndSrcOnly(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeCommander{}
	runner := newTestRunner(fake, true)
	sink := &recordSink{}

	err := runner.Run(context.Background(), Request{TargetDir: dir}, sink)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(sink.results))
	}
	for _, line := range fake.commandLines() {
		if strings.Contains(line, "pip install ") && !strings.Contains(line, "--upgrade") {
			t.Errorf("unexpected install invocation: %s", line)
		}
	}

	srcDir := filepath.Join(dir, "src")
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		t.Errorf("src folder not created: %v", err)
	}
}

func TestRun_InstallsUnionExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeCommander{}
	runner := newTestRunner(fake, true)

	req := Request{
		TargetDir: dir,
		Selected:  []string{"requests"},
		Custom:    []string{"numpy", "requests"},
	}
	if err := runner.Run(context.Background(), req, &recordSink{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	installCounts := map[string]int{}
	for _, c := range fake.calls {
		n := len(c.args)
		if n >= 3 && c.args[n-3] == "pip" && c.args[n-2] == "install" {
			installCounts[c.args[n-1]]++
		}
	}

	want := map[string]int{"requests": 1, "numpy": 1}
	for pkg, count := range want {
		if installCounts[pkg] != count {
			t.Errorf("package %s installed %d times, want %d", pkg, installCounts[pkg], count)
		}
	}
	if len(installCounts) != len(want) {
		t.Errorf("unexpected installs: %v", installCounts)
	}
}

func TestRun_InvalidDirectoryLaunchesNothing(t *testing.T) {
	fake := &fakeCommander{}
	runner := newTestRunner(fake, true)
	sink := &recordSink{}

	req := Request{TargetDir: filepath.Join(t.TempDir(), "does-not-exist")}
	err := runner.Run(context.Background(), req, sink)

	var dirErr *ErrDirectoryInvalid
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected ErrDirectoryInvalid, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no subprocess launches, got %d", len(fake.calls))
	}
	if len(sink.results) != 0 {
		t.Errorf("expected no published results, got %d", len(sink.results))
	}
}

func TestRun_HaltOnFailureStopsSequence(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeCommander{failOn: map[string]error{
		"--upgrade pip": fmt.Errorf("exit status 1"),
	}}
	runner := newTestRunner(fake, true)
	sink := &recordSink{}

	req := Request{TargetDir: dir, Selected: []string{"requests"}}
	err := runner.Run(context.Background(), req, sink)
	if err == nil {
		t.Fatal("expected error from failed pip upgrade")
	}

	// venv + failed pip upgrade, then halt: src and install never run.
	if len(sink.results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(sink.results))
	}
	last := sink.results[len(sink.results)-1]
	if last.Succeeded || last.Err == nil {
		t.Errorf("failed step not reported: %+v", last)
	}
	if last.Output == "" {
		t.Error("captured error output missing from result")
	}
	if _, err := os.Stat(filepath.Join(dir, "src")); !os.IsNotExist(err) {
		t.Error("src folder created after halt")
	}
}

func TestRun_KeepGoingAttemptsRemainingSteps(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeCommander{failOn: map[string]error{
		"install flask": fmt.Errorf("exit status 1"),
	}}
	runner := newTestRunner(fake, false)
	sink := &recordSink{}

	req := Request{TargetDir: dir, Selected: []string{"flask", "requests"}}
	err := runner.Run(context.Background(), req, sink)
	if err == nil {
		t.Fatal("expected summary error")
	}
	if !strings.Contains(err.Error(), "1 step(s) failed") {
		t.Errorf("unexpected summary: %v", err)
	}

	// All 5 steps ran despite the flask failure.
	if len(sink.results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(sink.results))
	}
	var requestsInstalled bool
	for _, line := range fake.commandLines() {
		if strings.Contains(line, "install requests") {
			requestsInstalled = true
		}
	}
	if !requestsInstalled {
		t.Error("later install skipped despite keep-going policy")
	}
}

func TestRun_ExistingVenvIsSkipped(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "venv"), 0755); err != nil {
		t.Fatal(err)
	}
	fake := &fakeCommander{}
	runner := newTestRunner(fake, true)
	sink := &recordSink{}

	if err := runner.Run(context.Background(), Request{TargetDir: dir}, sink); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	first := sink.results[0]
	if !first.Skipped || !first.Succeeded {
		t.Errorf("expected venv step skipped, got %+v", first)
	}
	for _, line := range fake.commandLines() {
		if strings.Contains(line, "-m venv") {
			t.Errorf("venv creation launched despite existing environment: %s", line)
		}
	}
}

func TestRun_RerunOnBootstrappedDirIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeCommander{}
	runner := newTestRunner(fake, true)

	for i := 0; i < 2; i++ {
		sink := &recordSink{}
		if err := runner.Run(context.Background(), Request{TargetDir: dir}, sink); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
		if len(sink.results) != 3 {
			t.Fatalf("run %d: expected 3 results, got %d", i+1, len(sink.results))
		}
	}
}

func TestRun_CancelledContextStopsBetweenSteps(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeCommander{}
	runner := newTestRunner(fake, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordSink{}
	err := runner.Run(ctx, Request{TargetDir: dir}, sink)
	if err == nil || !strings.Contains(err.Error(), "cancelled") {
		t.Fatalf("expected cancellation error, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no subprocess launches after cancel, got %d", len(fake.calls))
	}

	// The sink sees a terminal cancelled result, not just silence.
	if len(sink.results) != 1 {
		t.Fatalf("expected 1 published result, got %d", len(sink.results))
	}
	last := sink.results[0]
	if last.Succeeded || last.Err == nil || !strings.Contains(last.Err.Error(), "cancelled") {
		t.Errorf("cancellation not reported to sink: %+v", last)
	}
}

func TestPlan_CountsStepsForProgress(t *testing.T) {
	runner := newTestRunner(&fakeCommander{}, true)

	tests := []struct {
		name string
		req  Request
		want int
	}{
		{"no libraries", Request{TargetDir: "x"}, 3},
		{"two libraries", Request{TargetDir: "x", Selected: []string{"a", "b"}}, 5},
		{"duplicate across sets", Request{TargetDir: "x", Selected: []string{"a"}, Custom: []string{"a"}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(runner.Plan(tt.req)); got != tt.want {
				t.Errorf("Plan returned %d steps, want %d", got, tt.want)
			}
		})
	}
}

func TestRun_PipRunsInsideVenv(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeCommander{}
	runner := newTestRunner(fake, true)

	req := Request{TargetDir: dir, Selected: []string{"requests"}}
	if err := runner.Run(context.Background(), req, &recordSink{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	venvPython := filepath.Join(dir, "venv")
	for _, c := range fake.calls {
		line := c.name + " " + strings.Join(c.args, " ")
		if strings.Contains(line, "pip") && !strings.HasPrefix(c.name, venvPython) {
			t.Errorf("pip invoked outside venv: %s", line)
		}
	}
}
