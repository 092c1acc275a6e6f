package pattern

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/ustring/codec"
)

// find runs pat against text from the start and renders the match and its
// captures as strings. Position captures render as "@N" (1-based).
func find(t *testing.T, pat, text string) (string, []string, bool) {
	t.Helper()
	prog, err := Compile(pat)
	require.NoError(t, err)
	res, err := prog.Exec(text, 0, 0, nil)
	require.NoError(t, err)
	if res == nil {
		return "", nil, false
	}
	var caps []string
	for _, c := range res.Caps {
		if c.Position {
			caps = append(caps, fmt.Sprintf("@%d", c.StartIdx+1))
			continue
		}
		caps = append(caps, text[c.Start:c.End])
	}
	return text[res.Start:res.End], caps, true
}

func TestExecMatch(t *testing.T) {
	tests := []struct {
		name  string
		pat   string
		text  string
		match string
		caps  []string
		found bool
	}{
		{"literal", "lo", "hello", "lo", nil, true},
		{"no_match", "xyz", "hello", "", nil, false},
		{"digits", "%d+", "abc123def", "123", nil, true},
		{"greedy_star", "a.*b", "a1b2b3", "a1b2b", nil, true},
		{"lazy_minus", "a.-b", "a1b2b3", "a1b", nil, true},
		{"minus_empty", "a-", "aaa", "", nil, true},
		{"question_taken", "colou?r", "colour", "colour", nil, true},
		{"question_skipped", "colou?r", "color", "color", nil, true},
		{"question_backtracks", "a?ab", "ab", "ab", nil, true},
		{"star_backtracks", "%d*5", "12345", "12345", nil, true},
		{"captures", "(%w+)=(%w+)", "key=value", "key=value", []string{"key", "value"}, true},
		{"nested_captures", "((a)(b))", "xab", "ab", []string{"ab", "a", "b"}, true},
		{"position_capture", "()ll()", "hello", "ll", []string{"@3", "@5"}, true},
		{"backref", "(%a)%1", "abccd", "cc", []string{"c"}, true},
		{"backref_multibyte", "(é+)x%1", "ééxé ééxéé", "éxé", []string{"é"}, true},
		{"balanced", "%b()", "f(a(b)c)d", "(a(b)c)", nil, true},
		{"balanced_unclosed", "%b()", "f(a(b", "", nil, false},
		{"balanced_multibyte", "%b«»", "x«a«b»»y", "«a«b»»", nil, true},
		{"balanced_same", "%b''", "a'bc'd", "'bc'", nil, true},
		{"anchored_hit", "^he", "hello", "he", nil, true},
		{"anchored_miss", "^el", "hello", "", nil, false},
		{"end_anchor", "l+$", "hello all", "ll", nil, true},
		{"end_anchor_miss", "o$", "hello!", "", nil, false},
		{"full_anchor_empty", "^$", "", "", nil, true},
		{"empty_pattern", "", "abc", "", nil, true},
		{"empty_at_end", "x*$", "abc", "", nil, true},
		{"unicode_dot", "h.llo", "héllo", "héllo", nil, true},
		{"unicode_class", "[а-я]+", "abc привет", "привет", nil, true},
		{"negated_class", "[^,]+", ",,ab,c", "ab", nil, true},
		{"escaped_meta", "%.%-%(", "a.-(b", ".-(", nil, true},
		{"space_class", "%s+", "a \t\nb", " \t\n", nil, true},
		{"upper_escape_literal", "%A", "xyzA", "A", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, caps, found := find(t, tt.pat, tt.text)
			require.Equal(t, tt.found, found)
			if !found {
				return
			}
			assert.Equal(t, tt.match, match)
			assert.Equal(t, tt.caps, caps)
		})
	}
}

func TestExecCaptureRollback(t *testing.T) {
	// The first attempt closes capture 1 over "aaa" and fails at 'b';
	// backtracking must restore the capture table.
	_, caps, found := find(t, "(a*)(a)b", "aaab")
	require.True(t, found)
	assert.Equal(t, []string{"aa", "a"}, caps)

	_, caps, found = find(t, "(.-)=(.*)", "k=v=w")
	require.True(t, found)
	assert.Equal(t, []string{"k", "v=w"}, caps)
}

func TestExecCodePointIndexes(t *testing.T) {
	prog, err := Compile("(l+)")
	require.NoError(t, err)

	res, err := prog.Exec("héllo", 0, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Start)
	assert.Equal(t, 5, res.End)
	assert.Equal(t, 2, res.StartIdx)
	assert.Equal(t, 4, res.EndIdx)
	assert.Equal(t, Cap{Start: 3, End: 5, StartIdx: 2, EndIdx: 4}, res.Caps[0])
}

func TestExecFromOffset(t *testing.T) {
	prog, err := Compile("%d")
	require.NoError(t, err)

	// The second '1' is byte 3, code point 2.
	text := "1é1é1"
	res, err := prog.Exec(text, 1, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Start)
	assert.Equal(t, 2, res.StartIdx)

	res, err = prog.Exec(text, len(text), 5, nil)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestExecInvalidInput(t *testing.T) {
	prog, err := Compile("b")
	require.NoError(t, err)

	_, err = prog.Exec("a\xe2\x82", 0, 0, nil)
	assert.ErrorIs(t, err, codec.ErrTruncatedInput)

	// A match before the bad bytes is reported without touching them.
	res, err := prog.Exec("ab\xff", 0, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
}

func TestMatchAt(t *testing.T) {
	prog, err := Compile("b+")
	require.NoError(t, err)

	res, err := prog.MatchAt("abb", 0, 0)
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = prog.MatchAt("abb", 1, 1)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.End)
}

type fixedPrefilter struct {
	calls int
}

func (f *fixedPrefilter) Next(text string, pos int) int {
	f.calls++
	i := strings.Index(text[pos:], "é")
	if i < 0 {
		return -1
	}
	return pos + i
}

func TestExecPrefilter(t *testing.T) {
	prog, err := Compile("é%d")
	require.NoError(t, err)

	pf := &fixedPrefilter{}
	res, err := prog.Exec("aaé éé7", 0, 0, pf)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 5, res.StartIdx)
	assert.Equal(t, 7, res.Start)
	assert.Positive(t, pf.calls)

	res, err = prog.Exec("aaaa", 0, 0, pf)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestExecConcurrent(t *testing.T) {
	prog, err := Compile("(%a+)(%d+)")
	require.NoError(t, err)

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				res, err := prog.Exec("--abc123--", 0, 0, nil)
				if err != nil || res == nil || res.Start != 2 || res.End != 8 {
					t.Errorf("unexpected result %+v, %v", res, err)
					return
				}
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}

func BenchmarkExec(b *testing.B) {
	prog, err := Compile("(%w+)%s*=%s*(%w+)")
	if err != nil {
		b.Fatal(err)
	}
	text := strings.Repeat("não há nada aqui ", 20) + "chave = valor"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res, _ := prog.Exec(text, 0, 0, nil); res == nil {
			b.Fatal("no match")
		}
	}
}
