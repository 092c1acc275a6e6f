// Package exprlib exposes the ustring API to expr-lang expressions.
//
// Positions are 1-based code-point indexes and negative indexes count from
// the end, as in the library. Multiple results are returned as lists:
//
//	ufind("abc123", "%d+")         // [4, 6]
//	umatch("key=value", "(%w+)=(%w+)") // ["key", "value"]
//
// A search that does not match yields nil.
package exprlib

import (
	"github.com/expr-lang/expr"
)

type exprCustomFunc struct {
	name      string
	function  func(params ...any) (any, error)
	signature []any
}

var exprFuncs = []exprCustomFunc{
	{
		name:     "ulen",
		function: Len,
		signature: []any{
			new(func(string) (int, error)),
		},
	},
	{
		name:     "usub",
		function: Sub,
		signature: []any{
			new(func(string, int) (string, error)),
			new(func(string, int, int) (string, error)),
		},
	},
	{
		name:     "ureverse",
		function: Reverse,
		signature: []any{
			new(func(string) (string, error)),
		},
	},
	{
		name:     "uchar",
		function: Char,
		signature: []any{
			new(func(...int) (string, error)),
		},
	},
	{
		name:     "ucodepoints",
		function: CodePoints,
		signature: []any{
			new(func(string) ([]any, error)),
			new(func(string, int) ([]any, error)),
			new(func(string, int, int) ([]any, error)),
		},
	},
	{
		name:     "ufind",
		function: Find,
		signature: []any{
			new(func(string, string) ([]any, error)),
			new(func(string, string, int) ([]any, error)),
			new(func(string, string, int, bool) ([]any, error)),
		},
	},
	{
		name:     "umatch",
		function: Match,
		signature: []any{
			new(func(string, string) ([]any, error)),
			new(func(string, string, int) ([]any, error)),
		},
	},
	{
		name:     "ugmatch",
		function: GMatch,
		signature: []any{
			new(func(string, string) ([]any, error)),
		},
	},
	{
		name:     "ugsub",
		function: GSub,
		signature: []any{
			new(func(string, string, string) (string, error)),
			new(func(string, string, string, int) (string, error)),
			new(func(string, string, map[string]any) (string, error)),
			new(func(string, string, map[string]any, int) (string, error)),
		},
	},
	{
		name:     "ugsubcount",
		function: GSubCount,
		signature: []any{
			new(func(string, string, string) (int, error)),
			new(func(string, string, string, int) (int, error)),
		},
	},
	{
		name:     "uupper",
		function: Upper,
		signature: []any{
			new(func(string) (string, error)),
		},
	},
	{
		name:     "ulower",
		function: Lower,
		signature: []any{
			new(func(string) (string, error)),
		},
	},
}

var exprFunctionOptions []expr.Option

func init() {
	for _, function := range exprFuncs {
		exprFunctionOptions = append(exprFunctionOptions,
			expr.Function(function.name,
				function.function,
				function.signature...,
			))
	}
}

// GetExprOptions returns the compile options that register every function
// of this package together with env as the expression environment.
func GetExprOptions(env map[string]any) []expr.Option {
	ret := make([]expr.Option, 0, len(exprFunctionOptions)+1)
	ret = append(ret, exprFunctionOptions...)
	ret = append(ret, expr.Env(env))
	return ret
}

// Names lists the registered function names in registration order.
func Names() []string {
	names := make([]string, len(exprFuncs))
	for i, f := range exprFuncs {
		names[i] = f.name
	}
	return names
}
