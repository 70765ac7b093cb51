package bigint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "42", "-7", "2432902008176640000", "-123456789012345678901234567890"} {
		x, ok := Parse(s)
		require.True(t, ok, "parse %q", s)
		require.Equal(t, s, x.String())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "1.5", "1 2", "--1"} {
		_, ok := Parse(s)
		require.False(t, ok, "expected parse failure for %q", s)
	}
}

func TestArithmetic(t *testing.T) {
	a, b := FromInt64(7), FromInt64(3)
	require.Equal(t, "10", a.Add(b).String())
	require.Equal(t, "4", a.Sub(b).String())
	require.Equal(t, "21", a.Mul(b).String())
	require.Equal(t, "2", a.Quo(b).String())
}

func TestQuoTruncatesTowardZero(t *testing.T) {
	cases := []struct{ a, b, want string }{
		{"7", "2", "3"},
		{"-7", "2", "-3"},
		{"7", "-2", "-3"},
		{"-7", "-2", "3"},
	}
	for _, c := range cases {
		a, _ := Parse(c.a)
		b, _ := Parse(c.b)
		require.Equal(t, c.want, a.Quo(b).String(), "%s / %s", c.a, c.b)
	}
}

func TestBitNotInvolutive(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 42, -42} {
		x := FromInt64(n)
		require.Equal(t, x.String(), x.Not().Not().String())
	}
}

func TestShiftByZeroIsIdentity(t *testing.T) {
	for _, n := range []int64{0, 7, -7, 123456789} {
		x := FromInt64(n)
		require.Equal(t, x.String(), x.Lsh(0).String())
		require.Equal(t, x.String(), x.Rsh(0).String())
	}
}

func TestRshTruncatesTowardZero(t *testing.T) {
	cases := []struct {
		n    int64
		bits uint
		want string
	}{
		{7, 1, "3"},
		{-7, 1, "-3"},
		{-8, 1, "-4"},
		{-1, 3, "0"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, FromInt64(c.n).Rsh(c.bits).String())
	}
}

func TestLsh(t *testing.T) {
	require.Equal(t, "8", FromInt64(1).Lsh(3).String())
	require.Equal(t, "-8", FromInt64(-1).Lsh(3).String())
}

func TestSmallNarrowing(t *testing.T) {
	n, ok := FromInt64(42).Small()
	require.True(t, ok)
	require.Equal(t, 42, n)

	big, _ := Parse("123456789012345678901234567890")
	_, ok = big.Small()
	require.False(t, ok)
}

func TestIncAndCmp(t *testing.T) {
	x := FromInt64(41)
	require.Equal(t, 0, x.Inc().Cmp(FromInt64(42)))
	require.True(t, FromInt64(1).Cmp(FromInt64(2)) < 0)
	require.True(t, FromInt64(2).Cmp(FromInt64(1)) > 0)
}
