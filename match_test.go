package ustring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name       string
		s, pattern string
		init       int
		plain      bool
		start, end int
		caps       []string
		found      bool
	}{
		{"digits", "abc123", "%d+", 1, false, 4, 6, nil, true},
		{"unicode_offsets", "héllo", "l+", 1, false, 3, 4, nil, true},
		{"captures", "key=value", "(%w+)=(%w+)", 1, false, 1, 9, []string{"key", "value"}, true},
		{"position_captures", "héllo", "()ll()", 1, false, 3, 4, []string{"3", "5"}, true},
		{"init", "a1b2", "%d", 3, false, 4, 4, nil, true},
		{"negative_init", "a1b2c3", "%d", -2, false, 6, 6, nil, true},
		{"init_past_end", "abc", "", 5, false, 0, 0, nil, false},
		{"empty_at_end", "abc", "", 4, false, 4, 3, nil, true},
		{"empty_pattern", "abc", "", 1, false, 1, 0, nil, true},
		{"plain", "a.b.c", ".b", 1, true, 2, 3, nil, true},
		{"plain_specials", "f(x)%", "(x)%", 1, true, 2, 5, nil, true},
		{"anchored_with_init", "xab", "^ab", 2, false, 2, 3, nil, true},
		{"anchored_miss", "xab", "^ab", 1, false, 0, 0, nil, false},
		{"no_match", "hello", "xyz", 1, false, 0, 0, nil, false},
		{"escaped_dot", "a.b", "%.", 1, false, 2, 2, nil, true},
		{"escaped_dot_after_percent", "x%.y", "%.", 1, false, 3, 3, nil, true},
		{"single_member_class", "héllo", "[é]", 1, false, 2, 2, nil, true},
		{"bracket_close_member", "a]b", "[]]", 1, false, 2, 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Find(tt.s, tt.pattern, tt.init, tt.plain)
			require.NoError(t, err)
			if !tt.found {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, tt.start, m.Start, "start")
			assert.Equal(t, tt.end, m.End, "end")
			if tt.caps == nil {
				assert.Empty(t, m.Captures)
			} else {
				assert.Equal(t, tt.caps, Values(m.Captures))
			}
		})
	}
}

func TestFindByteOffsets(t *testing.T) {
	m, err := Find("日本語テキスト", "テ(キ)", 1, false)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 4, m.Start)
	assert.Equal(t, 5, m.End)
	assert.Equal(t, 9, m.ByteStart)
	assert.Equal(t, 15, m.ByteEnd)
	assert.Equal(t, "テキ", m.Text)

	c := m.Captures[0]
	assert.Equal(t, "キ", c.Value)
	assert.Equal(t, 5, c.Start)
	assert.Equal(t, 5, c.End)
	assert.Equal(t, 12, c.ByteStart)
	assert.Equal(t, 15, c.ByteEnd)
}

func TestMatchString(t *testing.T) {
	caps, err := MatchString("key=value", "(%w+)=(%w+)", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"key", "value"}, Values(caps))

	caps, err = MatchString("price: 42€", "%d+", 1)
	require.NoError(t, err)
	require.Len(t, caps, 1)
	assert.Equal(t, "42", caps[0].Value)
	assert.Equal(t, 8, caps[0].Start)

	caps, err = MatchString("abc", "%d", 1)
	require.NoError(t, err)
	assert.Nil(t, caps)

	caps, err = MatchString("ab", "()", 1)
	require.NoError(t, err)
	require.Len(t, caps, 1)
	assert.True(t, caps[0].IsPosition)
	assert.Equal(t, 1, caps[0].Any())
}

func TestCompileErrorKinds(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"[a", ErrMalformedClass},
		{"a%", ErrMalformedClass},
		{"a^", ErrMalformedAnchor},
		{"$a", ErrMalformedAnchor},
		{"+a", ErrDanglingQuantifier},
		{"(a", ErrUnbalancedCapture},
		{"a)", ErrUnbalancedCapture},
		{"(a)%2", ErrInvalidCapture},
		{"%b", ErrMalformedBalance},
	}
	for _, tt := range tests {
		_, err := Find("text", tt.pattern, 1, false)
		assert.ErrorIs(t, err, tt.want, "pattern %q", tt.pattern)

		var ce *CompileError
		assert.True(t, errors.As(err, &ce), "pattern %q", tt.pattern)
	}
}

func TestMatchInvalidText(t *testing.T) {
	_, err := Find("ab\xffc", "c", 1, false)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	var ee *EncodingError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 2, ee.Offset)
}

func TestMustCompile(t *testing.T) {
	p := MustCompile("(%a+)")
	assert.Equal(t, "(%a+)", p.String())
	assert.Equal(t, 1, p.NumCaptures())
	assert.False(t, p.IsPlain())

	assert.Panics(t, func() { MustCompile("(") })
}

func TestPatternMatchString(t *testing.T) {
	p := MustCompile("^%d+$")

	ok, err := p.MatchString("12345")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.MatchString("123a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompilePlainPattern(t *testing.T) {
	p, err := CompilePlain("%d")
	require.NoError(t, err)
	assert.True(t, p.IsPlain())

	m, err := p.Find("5 %d", 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 3, m.Start)
}
