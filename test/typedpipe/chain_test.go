//go:build typedpipe && (linux || darwin)

package typedpipe

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/jedi4ever/typedpipe/core"
	"github.com/jedi4ever/typedpipe/record"
	testutil "github.com/jedi4ever/typedpipe/test/util"
	"github.com/jedi4ever/typedpipe/wire"
)

func TestWhere_PipedBothSides(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)

	c := exec.Command(bin, "where")
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = strings.NewReader("")
	out, err := c.Output()
	if err != nil {
		t.Fatalf("where failed: %v", err)
	}

	if !strings.Contains(string(out), "<PipeInOut: A0 | SELF | B0>") {
		t.Errorf("where = %q", out)
	}
}

func TestChainStart_WritesFrame(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)
	term := testutil.OpenTerminal(t)

	var stdout, stderr bytes.Buffer
	c := exec.Command(bin)
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = term.Tty
	c.Stdout = &stdout
	c.Stderr = &stderr

	if _, err := testutil.RunWithTerminal(t, c, term); err != nil {
		t.Fatalf("start stage failed: %v\n%s", err, stderr.String())
	}

	want, err := wire.Marshal(record.Sample(), wire.Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(stdout.Bytes(), want) {
		t.Errorf("frame mismatch\n got  %x\n want %x", stdout.Bytes(), want)
	}
	if !strings.Contains(stderr.String(), "Start of pipe chain") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestChainMiddle_RelaysUnchanged(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)
	frame, err := wire.Marshal(record.Sample(), wire.Options{Compress: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	c := exec.Command(bin)
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = bytes.NewReader(frame)
	out, err := c.Output()
	if err != nil {
		t.Fatalf("middle stage failed: %v", err)
	}

	if !bytes.Equal(out, frame) {
		t.Errorf("middle stage altered the frame\n got  %x\n want %x", out, frame)
	}
}

func TestChainMiddle_RejectsText(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)

	var stdout, stderr bytes.Buffer
	c := exec.Command(bin)
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = strings.NewReader("hello\n")
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := c.Run()

	if code := testutil.ExitCode(err); code != core.ExitMalformed {
		t.Errorf("exit code = %d, want %d", code, core.ExitMalformed)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
}

func TestChainEnd_PrintsRecord(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)
	term := testutil.OpenTerminal(t)
	frame, err := wire.Marshal(record.Sample(), wire.Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var stderr bytes.Buffer
	c := exec.Command(bin)
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = bytes.NewReader(frame)
	c.Stdout = term.Tty
	c.Stderr = &stderr

	out, err := testutil.RunWithTerminal(t, c, term)
	if err != nil {
		t.Fatalf("end stage failed: %v\n%s", err, stderr.String())
	}
	if !strings.Contains(out, "obj="+record.Sample().String()) {
		t.Errorf("terminal output = %q", out)
	}
}

func TestChainEnd_EmptyInput(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)
	term := testutil.OpenTerminal(t)

	var stderr bytes.Buffer
	c := exec.Command(bin)
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = strings.NewReader("")
	c.Stdout = term.Tty
	c.Stderr = &stderr

	out, err := testutil.RunWithTerminal(t, c, term)
	if code := testutil.ExitCode(err); code != core.ExitNoInput {
		t.Errorf("exit code = %d, want %d", code, core.ExitNoInput)
	}
	if out != "" {
		t.Errorf("terminal output should be empty, got %q", out)
	}
	if !strings.Contains(stderr.String(), "unexpected eof from stdin") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestStandalone_ShowsHelp(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)
	term := testutil.OpenTerminal(t)

	var stderr bytes.Buffer
	c := exec.Command(bin)
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = term.Tty
	c.Stdout = term.Tty
	c.Stderr = &stderr

	out, err := testutil.RunWithTerminal(t, c, term)
	if err != nil {
		t.Fatalf("standalone run failed: %v", err)
	}
	if !strings.Contains(out, "show-help") {
		t.Errorf("terminal output = %q", out)
	}
	if strings.Contains(out, "TPIP") {
		t.Error("standalone output must not contain a frame")
	}
	if !strings.Contains(stderr.String(), "Standalone execution: THIS") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestShellPipeline_ThreeStages(t *testing.T) {
	bin := testutil.GetTypedpipeBinary(t)
	term := testutil.OpenTerminal(t)

	var stderr bytes.Buffer
	c := exec.Command("sh", "-c", `"$1" | "$1" | "$1"`, "sh", bin)
	c.Env = testutil.IsolateConfig(t)
	c.Stdin = term.Tty
	c.Stdout = term.Tty
	c.Stderr = &stderr

	out, err := testutil.RunWithTerminal(t, c, term)
	if err != nil {
		t.Fatalf("pipeline failed: %v\n%s", err, stderr.String())
	}
	if !strings.Contains(out, "obj="+record.Sample().String()) {
		t.Errorf("terminal output = %q", out)
	}
	for _, want := range []string{"Start of pipe chain", "Middle of pipe chain", "End of pipe chain"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q: %s", want, stderr.String())
		}
	}
}
