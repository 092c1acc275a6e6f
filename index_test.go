package ustring

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"日本語", 3},
		{"😀x", 2},
	}
	for _, tt := range tests {
		got, err := Len(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Len(%q)", tt.in)
	}

	_, err := Len("ab\xc3(")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.True(t, IsEncodingError(err))

	_, err = Len("ab\xe6\x97")
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestSub(t *testing.T) {
	tests := []struct {
		i, j int
		want string
	}{
		{2, 3, "él"},
		{1, -1, "héllo"},
		{-3, -1, "llo"},
		{-100, 2, "hé"},
		{0, 1, "h"},
		{4, 100, "lo"},
		{3, 2, ""},
		{1, 0, ""},
		{6, 10, ""},
		{-1, -2, ""},
	}
	for _, tt := range tests {
		got, err := Sub("héllo", tt.i, tt.j)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Sub(héllo, %d, %d)", tt.i, tt.j)
	}
}

func TestSubLengthProperty(t *testing.T) {
	s := "añb©c😀d"
	n, err := Len(s)
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		for j := i; j <= n; j++ {
			got, err := Sub(s, i, j)
			require.NoError(t, err)
			assert.Equal(t, j-i+1, utf8.RuneCountInString(got), "Sub(%d, %d)", i, j)
		}
	}
}

func TestReverse(t *testing.T) {
	for _, s := range []string{"", "a", "héllo", "日本語", "a😀b"} {
		r, err := Reverse(s)
		require.NoError(t, err)

		n1, _ := Len(s)
		n2, _ := Len(r)
		assert.Equal(t, n1, n2)

		back, err := Reverse(r)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}

	got, err := Reverse("héllo")
	require.NoError(t, err)
	assert.Equal(t, "olléh", got)
}

func TestCodePoints(t *testing.T) {
	got, err := CodePoints("héllo", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []rune{'h', 'é', 'l'}, got)

	got, err = CodePoints("héllo", -2, -1)
	require.NoError(t, err)
	assert.Equal(t, []rune{'l', 'o'}, got)

	got, err = CodePoints("héllo", 4, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChar(t *testing.T) {
	got, err := Char('h', 'é', 0x1F600)
	require.NoError(t, err)
	assert.Equal(t, "hé😀", got)

	got, err = Char()
	require.NoError(t, err)
	assert.Equal(t, "", got)

	for _, r := range []rune{0x110000, -1, 0xD800} {
		_, err = Char(r)
		assert.ErrorIs(t, err, ErrOutOfRange, "Char(%#x)", r)
	}
}
