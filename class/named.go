package class

// named maps escape letters to their ASCII range sets.
var named = map[rune][]Range{
	'a': {{'A', 'Z'}, {'a', 'z'}},
	'c': {{0, 31}, {127, 127}},
	'd': {{'0', '9'}},
	'g': {{33, 126}},
	'l': {{'a', 'z'}},
	'p': {{33, 47}, {58, 64}, {91, 96}, {123, 126}},
	's': {{'\t', '\r'}, {' ', ' '}},
	'u': {{'A', 'Z'}},
	'w': {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	'x': {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

// Escape compiles a single escaped symbol outside brackets: a named class
// for the letters a c d g l p s u w x, otherwise the literal code point.
func Escape(r rune) *Class {
	if rs, ok := named[r]; ok {
		return &Class{kind: kindSet, ranges: rs}
	}
	return Literal(r)
}
