package meta

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/coregx/ustring/codec"
	"github.com/coregx/ustring/literal"
	"github.com/coregx/ustring/pattern"
)

// execAll collects every match span (as text) using the engine, moving
// past empty matches by one code point.
func execAll(t *testing.T, e *Engine, text string) []string {
	t.Helper()
	var out []string
	pos, idx := 0, 0
	for pos <= len(text) {
		res, err := e.Exec(text, pos, idx)
		if err != nil {
			t.Fatalf("Exec: %v", err)
		}
		if res == nil {
			break
		}
		out = append(out, text[res.Start:res.End])
		pos, idx = res.End, res.EndIdx
		if res.Empty() {
			if pos >= len(text) {
				break
			}
			_, w, _ := codec.DecodeAt(text, pos)
			pos += w
			idx++
		}
	}
	return out
}

// TestStrategiesAgree runs every pattern with every toggle combination and
// checks that all strategies report the same matches.
func TestStrategiesAgree(t *testing.T) {
	patterns := []string{
		"héllo", "l", "(l)", "l+", "[lL]o", "[лЛ]и", "ключ=%w+", "%d+", "o$", "",
		"%.", "%%", "[é]", "[]]", "1%.5", "^hé",
	}
	text := "héllo wörld, Lo lo. ключ=знач1 Лилия 42 1.5 50% a]b %."

	configs := map[string]Config{}
	for _, pf := range []bool{false, true} {
		for _, plain := range []bool{false, true} {
			c := DefaultConfig()
			c.EnablePrefilter = pf
			c.EnablePlainFastPath = plain
			configs[fmt.Sprintf("prefilter=%v,plain=%v", pf, plain)] = c
		}
	}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			var want []string
			first := true
			for name, c := range configs {
				e, err := Compile(p, c)
				if err != nil {
					t.Fatal(err)
				}
				got := execAll(t, e, text)
				if first {
					want, first = got, false
					continue
				}
				if strings.Join(got, "|") != strings.Join(want, "|") {
					t.Errorf("%s (%v): got %q, want %q", name, e.Strategy(), got, want)
				}
			}
		})
	}
}

func TestEnginePlain(t *testing.T) {
	e, err := CompilePlain("ö.", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if e.Strategy() != UsePlain {
		t.Fatalf("Strategy() = %v, want Plain", e.Strategy())
	}

	res, err := e.Exec("aö.bö.", 0, 0)
	if err != nil || res == nil {
		t.Fatalf("Exec = %v, %v", res, err)
	}
	if res.Start != 1 || res.End != 4 || res.StartIdx != 1 || res.EndIdx != 3 {
		t.Errorf("got %+v", res)
	}

	res, err = e.Exec("aö.bö.", 4, 3)
	if err != nil || res == nil {
		t.Fatalf("Exec = %v, %v", res, err)
	}
	if res.StartIdx != 4 {
		t.Errorf("StartIdx = %d, want 4", res.StartIdx)
	}

	if got := e.Stats().PlainSearches; got != 2 {
		t.Errorf("PlainSearches = %d, want 2", got)
	}
	e.ResetStats()
	if got := e.Stats().PlainSearches; got != 0 {
		t.Errorf("PlainSearches after reset = %d", got)
	}
}

// TestEnginePlainFromClass covers single-literal patterns whose source text
// is not the literal they match.
func TestEnginePlainFromClass(t *testing.T) {
	tests := []struct {
		pattern  string
		text     string
		start    int
		end      int
		startIdx int
		endIdx   int
	}{
		{"%.", "x%.y", 2, 3, 2, 3},
		{"%%", "50%", 2, 3, 2, 3},
		{"[é]", "héllo", 1, 3, 1, 2},
		{"[]]", "a]b", 1, 2, 1, 2},
		{"1%.5", "v1.5", 1, 4, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e, err := Compile(tt.pattern, DefaultConfig())
			if err != nil {
				t.Fatal(err)
			}
			if e.Strategy() != UsePlain {
				t.Fatalf("Strategy() = %v, want Plain", e.Strategy())
			}
			res, err := e.Exec(tt.text, 0, 0)
			if err != nil || res == nil {
				t.Fatalf("Exec = %v, %v", res, err)
			}
			if res.Start != tt.start || res.End != tt.end || res.StartIdx != tt.startIdx || res.EndIdx != tt.endIdx {
				t.Errorf("got %+v", res)
			}
		})
	}

	e, err := Compile("%.", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res, err := e.Exec("no dot %", 0, 0); err != nil || res != nil {
		t.Errorf("Exec without a dot = %+v, %v; want no match", res, err)
	}
}

func TestEngineAnchoredMatchAt(t *testing.T) {
	e, err := Compile("^ab", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res, err := e.Exec("xab", 0, 0); err != nil || res != nil {
		t.Errorf("Exec = %+v, %v; want no match", res, err)
	}
	res, err := e.Exec("xab", 1, 1)
	if err != nil || res == nil || res.End != 3 {
		t.Errorf("Exec at 1 = %+v, %v", res, err)
	}
	if got := e.Stats().BacktrackSearches; got != 2 {
		t.Errorf("BacktrackSearches = %d, want 2", got)
	}
}

func TestEngineInvalidInput(t *testing.T) {
	for _, c := range []Config{DefaultConfig(), {CacheSize: 1, CacheStrategy: StrategyLRU, MaxLiterals: 1}} {
		e, err := Compile("zz", c)
		if err != nil {
			t.Fatal(err)
		}
		_, err = e.Exec("ab\xffcd", 0, 0)
		if !errors.Is(err, codec.ErrInvalidEncoding) {
			t.Errorf("%v: Exec error = %v, want ErrInvalidEncoding", e.Strategy(), err)
		}
	}
}

func TestEngineCompileError(t *testing.T) {
	_, err := Compile("(", DefaultConfig())
	if !errors.Is(err, pattern.ErrUnbalancedCapture) {
		t.Errorf("Compile error = %v, want ErrUnbalancedCapture", err)
	}
}

func TestEngineConcurrent(t *testing.T) {
	e, err := Compile("[kK]ey=(%w+)", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				res, err := e.Exec("x Key=abc", 0, 0)
				if err != nil || res == nil || res.Start != 2 {
					t.Errorf("unexpected %+v, %v", res, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := e.Stats().PrefilterSearches; got != 800 {
		t.Errorf("PrefilterSearches = %d, want 800", got)
	}
}

func TestAlternatives(t *testing.T) {
	tests := []struct {
		name   string
		lits   []string
		want   Strategy
		needle string
	}{
		{"prefix_absorbs", []string{"foobar", "foo"}, UsePrefilter, "foo"},
		{"distinct", []string{"Key", "key"}, UseAhoCorasick, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lits := make([]literal.Literal, len(tt.lits))
			for i, l := range tt.lits {
				lits[i] = literal.NewLiteral([]byte(l), true)
			}
			seq := literal.NewSeq(lits...)
			pf, got := alternatives(seq)
			if got != tt.want {
				t.Fatalf("strategy = %v, want %v", got, tt.want)
			}
			if seq.Len() != len(tt.lits) {
				t.Errorf("input sequence modified: %d literals", seq.Len())
			}
			if tt.needle != "" {
				mm, ok := pf.(*memmemPrefilter)
				if !ok || mm.needle != tt.needle {
					t.Errorf("prefilter = %#v, want memmem %q", pf, tt.needle)
				}
			}
		})
	}
}

func TestEngineKeepsExtractedPrefixes(t *testing.T) {
	e, err := Compile("[kK]ey=(%w+)", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if e.Strategy() != UseAhoCorasick {
		t.Fatalf("strategy = %v", e.Strategy())
	}
	if got := e.Prefixes().Strings(); len(got) != 2 {
		t.Errorf("prefixes = %q, want two", got)
	}

	res, err := e.Exec("the Key=v1", 0, 0)
	if err != nil || res == nil {
		t.Fatalf("Exec = %v, %v", res, err)
	}
	if res.Start != 4 || res.Caps[0].Start != 8 {
		t.Errorf("match at %d, capture at %d", res.Start, res.Caps[0].Start)
	}
}
