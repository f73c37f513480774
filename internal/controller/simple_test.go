package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

func captureCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return cmd, &buf
}

func sampleOptions() *m.Options {
	var opts m.Options
	opts.AddIfNonBlank("--add-modules", "org.junit.jupiter.api")
	opts.AddIfNonBlank("--add-reads", "foo=org.junit.jupiter.api")

	return &opts
}

func TestSimpleUI_DisplayOptions_Lines(t *testing.T) {
	cmd, buf := captureCommand()
	ui := NewSimpleUI(cmd, false)

	if err := ui.DisplayOptions(context.Background(), sampleOptions()); err != nil {
		t.Fatalf("DisplayOptions() error = %v", err)
	}

	want := "--add-modules org.junit.jupiter.api\n--add-reads foo=org.junit.jupiter.api\n"
	if buf.String() != want {
		t.Errorf("DisplayOptions() output = %q, want %q", buf.String(), want)
	}
}

func TestSimpleUI_DisplayOptions_Table(t *testing.T) {
	cmd, buf := captureCommand()
	ui := NewSimpleUI(cmd, true)

	if err := ui.DisplayOptions(context.Background(), sampleOptions()); err != nil {
		t.Fatalf("DisplayOptions() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"OPTION", "VALUE", "--add-modules", "foo=org.junit.jupiter.api"} {
		if !strings.Contains(output, want) {
			t.Errorf("table output missing %q:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayPlan(t *testing.T) {
	cmd, buf := captureCommand()
	ui := NewSimpleUI(cmd, false)

	rows := []PlanRow{
		{Release: m.NoRelease, Module: "foo", Root: "src/main", Output: "out/foo", FileCount: 3},
		{Release: 17, Module: "", Root: "src/main17", Output: "out/META-INF/versions/17", FileCount: 1},
	}

	if err := ui.DisplayPlan(context.Background(), rows); err != nil {
		t.Fatalf("DisplayPlan() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"RELEASE", "src/main", "17", "Total Roots 2", "4"} {
		if !strings.Contains(output, want) {
			t.Errorf("plan output missing %q:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayCheckFindings(t *testing.T) {
	cmd, buf := captureCommand()
	ui := NewSimpleUI(cmd, false)

	findings := []CheckFinding{
		{File: "bad.txt", Line: 3, Message: `unknown keyword "add-red"`},
		{File: "gone.txt", Message: "read gone.txt: file does not exist"},
	}

	if err := ui.DisplayCheckFindings(context.Background(), findings); err != nil {
		t.Fatalf("DisplayCheckFindings() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "bad.txt:3: unknown keyword") {
		t.Errorf("output missing line form:\n%s", output)
	}

	if !strings.Contains(output, "gone.txt: read gone.txt") {
		t.Errorf("output missing lineless form:\n%s", output)
	}
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, _ := captureCommand()
	ui := NewSimpleUI(cmd, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.DisplayOptions(ctx, sampleOptions()); err == nil {
		t.Fatal("DisplayOptions() expected error for cancelled context")
	}
}
