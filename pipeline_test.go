package shush

import (
	"context"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

func TestPipeCapture(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("echo").Args("hello").
		Pipe(sh.Command("cat")).
		Check(context.Background())
	require.NoError(t, err)
	require.Zero(t, h.ExitCode)

	out, ok := h.Output()
	require.True(t, ok)
	require.Equal(t, "hello\n", string(out))
}

func TestPipeTail(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("echo").Args("hello\ngoodbye").
		Pipe(sh.Command("tail").Args("-1")).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "goodbye\n", string(out))
}

func TestPipeThreeStagesStream(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("printf").Args(`a\nb\nc\n`).
		Pipe(
			sh.Command("grep").Args("b"),
			sh.Command("cat"),
		).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "b\n", string(out))
}

func TestPipeLongOption(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("printf").Args(`foo=bar\n`).
		Pipe(sh.Command("grep").Opt("regexp", "foo")).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "foo=bar\n", string(out))
}

func TestPipeAssociativity(t *testing.T) {
	sh := New(WithCapture())
	run := func(p Pipeline) string {
		h, err := p.Check(context.Background())
		require.NoError(t, err)
		out, _ := h.Output()
		return string(out)
	}

	chained := sh.Command("echo").Args("x").Pipe(sh.Command("cat")).Pipe(sh.Command("cat"))
	variadic := Pipe(sh.Command("echo").Args("x"), sh.Command("cat"), sh.Command("cat"))
	require.Equal(t, run(chained), run(variadic))
}

func TestNonFinalFailureIsSwallowed(t *testing.T) {
	// Classic shell-pipe semantics: only the terminal stage's exit
	// status counts.
	sh := New(WithCapture())
	h, err := sh.Command("false").
		Pipe(sh.Command("true")).
		Check(context.Background())
	require.NoError(t, err)
	require.Zero(t, h.ExitCode)
}

func TestFinalFailureRaises(t *testing.T) {
	sh := New(WithCapture())
	_, err := sh.Command("echo").Args("hi").
		Pipe(sh.Command("sh").Args("-c", "cat >/dev/null; exit 3")).
		Check(context.Background())

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.ExitCode)
}

func TestReadFromText(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("cat").
		ReadFrom(Text("hello")).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "hello", string(out))
}

func TestReadFromBytes(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("cat").
		ReadFrom(Bytes([]byte("raw bytes"))).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "raw bytes", string(out))
}

func TestReadFromReader(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("cat").
		ReadFrom(FromReader(strings.NewReader("streamed"))).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "streamed", string(out))
}

func TestReadFromFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/in.txt", []byte("from a file"), 0o644))

	sh := New(WithCapture(), WithFilesystem(fs))
	h, err := sh.Command("cat").
		ReadFrom(FromFile("/in.txt")).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "from a file", string(out))
}

func TestReadFromMissingFile(t *testing.T) {
	sh := New(WithCapture(), WithFilesystem(memfs.New()))
	_, err := sh.Command("cat").
		ReadFrom(FromFile("/nope.txt")).
		Check(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "/nope.txt")
}

func TestReadFromFeedsFirstStageOnly(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("cat").
		Pipe(sh.Command("tail").Args("-1")).
		ReadFrom(Text("one\ntwo\n")).
		Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "two\n", string(out))
}

func TestDoubleReadFromPanics(t *testing.T) {
	sh := New(WithCapture())
	p := sh.Command("cat").ReadFrom(Text("first"))
	require.PanicsWithError(t,
		"shush: ReadFrom: input source is already set",
		func() { p.ReadFrom(Text("second")) })
}

func TestWriteToFile(t *testing.T) {
	fs := memfs.New()
	sh := New(WithFilesystem(fs))

	h, err := sh.Command("echo").Args("persisted").
		WriteTo(context.Background(), ToFile("/out.txt"))
	require.NoError(t, err)

	// A path sink redirects rather than captures.
	_, ok := h.Output()
	require.False(t, ok)

	content, err := util.ReadFile(fs, "/out.txt")
	require.NoError(t, err)
	require.Equal(t, "persisted\n", string(content))
}

func TestDiscardOutputIsAbsentNotEmpty(t *testing.T) {
	sh := New()
	h, err := sh.Command("echo").Args("dropped").
		WriteTo(context.Background(), Discard)
	require.NoError(t, err)

	out, ok := h.Output()
	require.False(t, ok)
	require.Nil(t, out)
}

func TestCaptureZeroBytesIsPresent(t *testing.T) {
	sh := New(WithCapture())
	h, err := sh.Command("true").Check(context.Background())
	require.NoError(t, err)

	out, ok := h.Output()
	require.True(t, ok)
	require.Empty(t, out)
}

func TestWriteToOverridesConfiguredSink(t *testing.T) {
	sh := New(WithDiscard())
	h, err := sh.Command("echo").Args("explicit").
		WriteTo(context.Background(), Capture)
	require.NoError(t, err)

	out, ok := h.Output()
	require.True(t, ok)
	require.Equal(t, "explicit\n", string(out))
}

func TestPipelineSpawnFailureUnwinds(t *testing.T) {
	sh := New(WithCapture())
	_, err := sh.Command("echo").Args("hello").
		Pipe(sh.Command("shush-no-such-program-928374")).
		Check(context.Background())
	require.Error(t, err)

	var exitErr *ExitError
	require.NotErrorAs(t, err, &exitErr)
}

func TestConcatKeepsLeftSource(t *testing.T) {
	sh := New(WithCapture())
	left := sh.Command("cat").ReadFrom(Text("payload"))
	right := Pipe(sh.Command("cat"))

	h, err := left.Concat(right).Check(context.Background())
	require.NoError(t, err)

	out, _ := h.Output()
	require.Equal(t, "payload", string(out))
}
