package codec

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAt(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		off     int
		want    rune
		width   int
		wantErr error
	}{
		{"ascii", "a", 0, 'a', 1, nil},
		{"two_byte", "é", 0, 'é', 2, nil},
		{"three_byte", "€", 0, '€', 3, nil},
		{"four_byte", "😀", 0, '😀', 4, nil},
		{"offset", "aé", 1, 'é', 2, nil},
		{"end_of_input", "a", 1, EOF, 0, nil},
		{"max_rune", "\xF4\x8F\xBF\xBF", 0, MaxRune, 4, nil},
		{"lone_continuation", "\x80", 0, 0, 0, ErrInvalidEncoding},
		{"overlong_c0", "\xC0\xAF", 0, 0, 0, ErrInvalidEncoding},
		{"overlong_c1", "\xC1\xBF", 0, 0, 0, ErrInvalidEncoding},
		{"overlong_e0", "\xE0\x80\xAF", 0, 0, 0, ErrInvalidEncoding},
		{"surrogate_ed", "\xED\xA0\x80", 0, 0, 0, ErrInvalidEncoding},
		{"overlong_f0", "\xF0\x80\x80\xAF", 0, 0, 0, ErrInvalidEncoding},
		{"above_max_f4", "\xF4\x90\x80\x80", 0, 0, 0, ErrInvalidEncoding},
		{"lead_f5", "\xF5\x80\x80\x80", 0, 0, 0, ErrInvalidEncoding},
		{"bad_second_continuation", "\xE2\x82\x41", 0, 0, 0, ErrInvalidEncoding},
		{"truncated_two", "\xC3", 0, 0, 0, ErrTruncatedInput},
		{"truncated_three", "a\xE2\x82", 1, 0, 0, ErrTruncatedInput},
		{"truncated_four", "\xF0\x9F\x98", 0, 0, 0, ErrTruncatedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, err := DecodeAt(tt.in, tt.off)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var cerr *Error
				require.True(t, errors.As(err, &cerr))
				assert.Equal(t, tt.off, cerr.Offset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.width, w)
		})
	}
}

func TestEncode(t *testing.T) {
	for _, r := range []rune{0, 'a', 0x7F, 0x80, 'é', 0x7FF, 0x800, '€', 0xFFFF, 0x10000, '😀', MaxRune} {
		got, err := Encode(r)
		require.NoError(t, err)
		assert.Equal(t, string(r), string(got), "rune %#x", r)
		assert.Equal(t, utf8.RuneLen(r), Len(r))
	}

	for _, r := range []rune{-1, 0xD800, 0xDFFF, MaxRune + 1} {
		_, err := Encode(r)
		assert.ErrorIs(t, err, ErrOutOfRange, "rune %#x", r)
		assert.False(t, ValidRune(r))
	}
}

func TestCursor(t *testing.T) {
	c := NewCursor("hé😀")
	var got []rune
	var offsets []int
	for !c.Done() {
		offsets = append(offsets, c.Pos())
		r, _, err := c.Next()
		require.NoError(t, err)
		got = append(got, r)
	}
	assert.Equal(t, []rune{'h', 'é', '😀'}, got)
	assert.Equal(t, []int{0, 1, 3}, offsets)
	assert.Equal(t, 3, c.Index())
	assert.Equal(t, 7, c.Pos())

	r, w, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, EOF, r)
	assert.Zero(t, w)
	assert.Equal(t, 3, c.Index())
}

func TestCursorSkip(t *testing.T) {
	c := NewCursor("añb")
	n, err := c.Skip(2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, c.Pos())

	n, err = c.Skip(5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, c.Done())

	bad := NewCursor("a\xFFb")
	_, err = bad.Skip(3)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestCount(t *testing.T) {
	tests := map[string]int{
		"":          0,
		"hello":     5,
		"héllo":     5,
		"日本語":       3,
		"a😀b😀c":     5,
		"asciiasciié": 11,
	}
	for in, want := range tests {
		got, err := Count(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Count("abc\xE2\x82")
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.ErrorIs(t, Validate("\xC0\x80"), ErrInvalidEncoding)
}

func TestDecodeRoundTrip(t *testing.T) {
	in := "Grüße, 世界! 😀 ÿ"
	runes, err := Decode(in)
	require.NoError(t, err)

	var out []byte
	for _, r := range runes {
		out, err = AppendRune(out, r)
		require.NoError(t, err)
	}
	assert.Equal(t, in, string(out))
}

// FuzzRoundTrip checks that every string the decoder accepts re-encodes to
// the same bytes, and that acceptance agrees with unicode/utf8.
func FuzzRoundTrip(f *testing.F) {
	for _, seed := range []string{"", "abc", "héllo", "\xED\xA0\x80", "\xF4\x90\x80\x80", "😀", "\xC3"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		runes, err := Decode(s)
		if utf8.ValidString(s) != (err == nil) {
			t.Fatalf("Decode(%q) err = %v, utf8.ValidString = %v", s, err, utf8.ValidString(s))
		}
		if err != nil {
			return
		}
		var out []byte
		for _, r := range runes {
			if out, err = AppendRune(out, r); err != nil {
				t.Fatalf("AppendRune(%#x): %v", r, err)
			}
		}
		if string(out) != s {
			t.Fatalf("round trip %q -> %q", s, out)
		}
	})
}

func TestAdvance(t *testing.T) {
	s := "ab日本c"
	idx, err := Advance(s, 0, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = Advance(s, 2, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	idx, err = Advance(s, 5, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = Advance("a\xFFb", 0, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
