package shush

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenProgramFirst(t *testing.T) {
	sh := New()
	require.Equal(t, []string{"echo"}, sh.Command("echo").Flatten())
}

func TestFlattenDeterministic(t *testing.T) {
	cmd := New().Command("tar").
		Flag("v").
		Opt("file", "out.tar").
		Args("a", "b", 3)
	require.Equal(t, cmd.Flatten(), cmd.Flatten())
}

func TestFlattenBooleanOptions(t *testing.T) {
	sh := New()
	require.Equal(t,
		[]string{"prog", "-x"},
		sh.Command("prog").Flag("x").Flatten())
	require.Equal(t,
		[]string{"prog", "--foo-bar"},
		sh.Command("prog").Flag("foo_bar").Flatten())
}

func TestFlattenValuedOptions(t *testing.T) {
	sh := New()
	require.Equal(t,
		[]string{"prog", "-c", "v"},
		sh.Command("prog").Opt("c", "v").Flatten())
	// Long options use inline "="; this is the format contract, not a
	// convenience.
	require.Equal(t,
		[]string{"grep", "--regexp=foo"},
		sh.Command("grep").Opt("regexp", "foo").Flatten())
}

func TestFlattenOptionOrderAndOverride(t *testing.T) {
	cmd := New().Command("prog").
		Opt("a", 1).
		Opt("bee", 2).
		Opt("a", 3)
	// Overriding keeps the key's original position.
	require.Equal(t, []string{"prog", "-a", "3", "--bee=2"}, cmd.Flatten())
}

func TestFlattenOptionFalseValue(t *testing.T) {
	// Only true marks a flag; false is an ordinary value.
	require.Equal(t,
		[]string{"prog", "--color=false"},
		New().Command("prog").Opt("color", false).Flatten())
}

func TestFlattenPositionalFiltering(t *testing.T) {
	cmd := New().Command("echo").Args(false, "a", nil, "b")
	require.Equal(t, []string{"echo", "a", "b"}, cmd.Flatten())
}

func TestFlattenConditionalArgs(t *testing.T) {
	cmd := New().Command("echo").Args("hello", If(false, "goodbye"), If(true, "again"))
	require.Equal(t, []string{"echo", "hello", "again"}, cmd.Flatten())
}

func TestFlattenSequenceExpansion(t *testing.T) {
	cmd := New().Command("echo").Args("a", []string{"b", "c"}, "d")
	require.Equal(t, []string{"echo", "a", "b", "c", "d"}, cmd.Flatten())
}

func TestFlattenSequenceOneLevelOnly(t *testing.T) {
	// Nested collections are stringified, not expanded.
	cmd := New().Command("echo").Args([]any{"b", []string{"x", "y"}})
	require.Equal(t, []string{"echo", "b", "[x y]"}, cmd.Flatten())
}

func TestFlattenScalars(t *testing.T) {
	cmd := New().Command("prog").Args(42, int64(-7), 1.5, uint8(255), true, []byte("raw"))
	require.Equal(t, []string{"prog", "42", "-7", "1.5", "255", "true", "raw"}, cmd.Flatten())
}

func TestArgumentsImmutable(t *testing.T) {
	base := New().Command("echo").Args("base")
	left := base.Args("left")
	right := base.Args("right").Opt("n", 1)

	require.Equal(t, []string{"echo", "base"}, base.Flatten())
	require.Equal(t, []string{"echo", "base", "left"}, left.Flatten())
	require.Equal(t, []string{"echo", "-n", "1", "base", "right"}, right.Flatten())
}

func TestOptionToken(t *testing.T) {
	require.Equal(t, "-x", optionToken("x"))
	require.Equal(t, "--foo", optionToken("foo"))
	require.Equal(t, "--foo-bar-baz", optionToken("foo_bar_baz"))
}
