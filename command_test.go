package shush

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckSuccess(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("true").Check(context.Background())
	require.NoError(t, err)
	require.Zero(t, h.ExitCode)
}

func TestCheckCapturesOutput(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("echo").Args("hello").Check(context.Background())
	require.NoError(t, err)

	out, ok := h.Output()
	require.True(t, ok)
	require.Equal(t, "hello\n", string(out))
}

func TestCheckFailureRaisesExitError(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("sh").Args("-c", "exit 7").Check(context.Background())

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 7, exitErr.ExitCode)
	require.Equal(t, []string{"sh", "-c", "exit 7"}, exitErr.Argv)
	require.NotNil(t, h)
	require.Equal(t, 7, h.ExitCode)
}

func TestCheckSpawnErrorIsNotExitError(t *testing.T) {
	sh := New(WithCapture())
	_, err := sh.Command("shush-no-such-program-928374").Check(context.Background())
	require.Error(t, err)

	var exitErr *ExitError
	require.False(t, errors.As(err, &exitErr))
}

func TestCheckWithDir(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("pwd").WithDir("/tmp").Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Contains(t, string(out), "/tmp")
}

func TestCheckWithEnv(t *testing.T) {
	sh := New(WithCapture()).WithEnv(map[string]string{"SHUSH_TEST_VAR": "merged"})
	h, err := sh.Command("sh").Args("-c", "echo $SHUSH_TEST_VAR").Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "merged\n", string(out))
}

func TestJoinMergesStderrIntoCapture(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("sh").Args("-c", "echo oops >&2").Join().Check(context.Background())
	require.NoError(t, err)

	out, ok := h.Output()
	require.True(t, ok)
	require.Equal(t, "oops\n", string(out))
}

func TestStderrCapture(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("sh").Args("-c", "echo out && echo err >&2").
		Set("stderr", Capture).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "out\n", string(out))
	errOut, ok := h.Stderr()
	require.True(t, ok)
	require.Equal(t, "err\n", string(errOut))
}

func TestWriteToWriter(t *testing.T) {
	var buf bytes.Buffer
	sh := New()
	h, err := sh.Command("echo").Args("sunk").WriteTo(context.Background(), ToWriter(&buf))
	require.NoError(t, err)
	require.Equal(t, "sunk\n", buf.String())

	// Output was redirected, not captured.
	_, ok := h.Output()
	require.False(t, ok)
}

func TestStartDoesNotRaiseOnFailure(t *testing.T) {
	sh := New(WithCapture())
	p, err := sh.Command("false").Start(context.Background())
	require.NoError(t, err)

	h, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, 1, h.ExitCode)
}

func TestStartCapturesOnWait(t *testing.T) {
	sh := New(WithCapture())
	p, err := sh.Command("echo").Args("async").Start(context.Background())
	require.NoError(t, err)

	h, err := p.Wait()
	require.NoError(t, err)

	out, ok := h.Output()
	require.True(t, ok)
	require.Equal(t, "async\n", string(out))
}

func TestStartUsesConfiguredStdin(t *testing.T) {
	sh := New(WithCapture())
	p, err := sh.Command("cat").Set("stdin", "from config").Start(context.Background())
	require.NoError(t, err)

	h, err := p.Wait()
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "from config", string(out))
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sh := New(WithCapture())
	_, err := sh.Command("sleep").Args(60).Check(ctx)
	require.Error(t, err)
}
