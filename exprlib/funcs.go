package exprlib

import (
	"errors"
	"fmt"

	"github.com/coregx/ustring"
	"github.com/coregx/ustring/internal/conv"
)

// ErrArgument reports an argument of the wrong type or range.
var ErrArgument = errors.New("bad argument")

func argError(fn string, n int, format string, args ...any) error {
	return fmt.Errorf("%s: argument %d: %w: %s", fn, n, ErrArgument, fmt.Sprintf(format, args...))
}

// intArg returns params[i] as an int, or def when it is absent.
func intArg(fn string, params []any, i, def int) (int, error) {
	if i >= len(params) {
		return def, nil
	}
	n, ok := conv.ToInt(params[i])
	if !ok {
		return 0, argError(fn, i+1, "integer expected, got %T", params[i])
	}
	return n, nil
}

func captureValues(caps []ustring.Capture) []any {
	out := make([]any, len(caps))
	for i, c := range caps {
		out[i] = c.Any()
	}
	return out
}

// func Len(s string) (int, error)
func Len(params ...any) (any, error) {
	return ustring.Len(params[0].(string))
}

// func Sub(s string, i int, j int) (string, error)
func Sub(params ...any) (any, error) {
	i, err := intArg("usub", params, 1, 1)
	if err != nil {
		return nil, err
	}
	j, err := intArg("usub", params, 2, -1)
	if err != nil {
		return nil, err
	}
	return ustring.Sub(params[0].(string), i, j)
}

// func Reverse(s string) (string, error)
func Reverse(params ...any) (any, error) {
	return ustring.Reverse(params[0].(string))
}

// func Char(cps ...int) (string, error)
func Char(params ...any) (any, error) {
	cps := make([]rune, len(params))
	for i := range params {
		n, err := intArg("uchar", params, i, 0)
		if err != nil {
			return nil, err
		}
		r, ok := conv.IntToRune(n)
		if !ok {
			return nil, argError("uchar", i+1, "code point %d out of range", n)
		}
		cps[i] = r
	}
	return ustring.Char(cps...)
}

// func CodePoints(s string, i int, j int) ([]any, error)
func CodePoints(params ...any) (any, error) {
	i, err := intArg("ucodepoints", params, 1, 1)
	if err != nil {
		return nil, err
	}
	j, err := intArg("ucodepoints", params, 2, i)
	if err != nil {
		return nil, err
	}
	cps, err := ustring.CodePoints(params[0].(string), i, j)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(cps))
	for k, r := range cps {
		out[k] = int(r)
	}
	return out, nil
}

// func Find(s string, pattern string, init int, plain bool) ([]any, error)
func Find(params ...any) (any, error) {
	init, err := intArg("ufind", params, 2, 1)
	if err != nil {
		return nil, err
	}
	plain := false
	if len(params) > 3 {
		plain = params[3].(bool)
	}
	m, err := ustring.Find(params[0].(string), params[1].(string), init, plain)
	if err != nil || m == nil {
		return nil, err
	}
	out := []any{m.Start, m.End}
	return append(out, captureValues(m.Captures)...), nil
}

// func Match(s string, pattern string, init int) ([]any, error)
func Match(params ...any) (any, error) {
	init, err := intArg("umatch", params, 2, 1)
	if err != nil {
		return nil, err
	}
	caps, err := ustring.MatchString(params[0].(string), params[1].(string), init)
	if err != nil || caps == nil {
		return nil, err
	}
	return captureValues(caps), nil
}

// func GMatch(s string, pattern string) ([]any, error)
//
// Each element is the single capture of a match, or the list of its
// captures when the pattern has more than one.
func GMatch(params ...any) (any, error) {
	it, err := ustring.GMatch(params[0].(string), params[1].(string))
	if err != nil {
		return nil, err
	}
	out := []any{}
	for it.Next() {
		vals := captureValues(it.Captures())
		if len(vals) == 1 {
			out = append(out, vals[0])
		} else {
			out = append(out, vals)
		}
	}
	return out, it.Err()
}

func gsub(fn string, params []any) (string, int, error) {
	limit, err := intArg(fn, params, 3, -1)
	if err != nil {
		return "", 0, err
	}
	s, p := params[0].(string), params[1].(string)
	switch repl := params[2].(type) {
	case string:
		return ustring.GSub(s, p, repl, limit)
	case map[string]any:
		table := make(map[string]string, len(repl))
		for k, v := range repl {
			table[k] = fmt.Sprint(v)
		}
		return ustring.GSubMap(s, p, table, limit)
	default:
		return "", 0, argError(fn, 3, "string or map expected, got %T", params[2])
	}
}

// func GSub(s string, pattern string, repl string|map, limit int) (string, error)
func GSub(params ...any) (any, error) {
	out, _, err := gsub("ugsub", params)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// func GSubCount(s string, pattern string, repl string, limit int) (int, error)
func GSubCount(params ...any) (any, error) {
	_, n, err := gsub("ugsubcount", params)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// func Upper(s string) (string, error)
func Upper(params ...any) (any, error) {
	return ustring.ToUpper(params[0].(string))
}

// func Lower(s string) (string, error)
func Lower(params ...any) (any, error) {
	return ustring.ToLower(params[0].(string))
}
