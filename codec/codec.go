// Package codec implements strict UTF-8 decoding and encoding per RFC 3629,
// one code point at a time, plus a forward cursor that tracks byte offset
// and code-point index together.
//
// Unlike unicode/utf8, which folds every failure into RuneError, the decoder
// distinguishes malformed sequences (ErrInvalidEncoding) from sequences cut
// short by the end of input (ErrTruncatedInput), and reports the byte offset
// of the failure.
package codec

// MaxRune is the largest valid Unicode code point.
const MaxRune = 0x10FFFF

// EOF is the sentinel code point fed to matchers past the end of input.
// No character class ever matches it.
const EOF rune = -1

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// acceptRange bounds the first continuation byte of a sequence.
type acceptRange struct {
	lo, hi byte
}

// leadInfo describes a lead byte: sequence length (0 = invalid lead) and the
// allowed range of the first continuation byte. The tight ranges for E0, ED,
// F0 and F4 exclude overlong forms, surrogates and values above MaxRune.
type leadInfo struct {
	size   int
	accept acceptRange
}

var leads = func() (t [256]leadInfo) {
	full := acceptRange{0x80, 0xBF}
	for b := 0x00; b < 0x80; b++ {
		t[b] = leadInfo{size: 1}
	}
	for b := 0xC2; b <= 0xDF; b++ {
		t[b] = leadInfo{size: 2, accept: full}
	}
	for b := 0xE0; b <= 0xEF; b++ {
		t[b] = leadInfo{size: 3, accept: full}
	}
	t[0xE0].accept = acceptRange{0xA0, 0xBF}
	t[0xED].accept = acceptRange{0x80, 0x9F}
	for b := 0xF0; b <= 0xF4; b++ {
		t[b] = leadInfo{size: 4, accept: full}
	}
	t[0xF0].accept = acceptRange{0x90, 0xBF}
	t[0xF4].accept = acceptRange{0x80, 0x8F}
	return t
}()

// DecodeAt decodes the code point starting at byte offset off.
//
// It returns the code point and the number of bytes it occupies. At or past
// the end of s it returns (EOF, 0, nil).
func DecodeAt(s string, off int) (rune, int, error) {
	if off >= len(s) {
		return EOF, 0, nil
	}
	b0 := s[off]
	if b0 < 0x80 {
		return rune(b0), 1, nil
	}

	info := leads[b0]
	if info.size == 0 {
		return 0, 0, decodeError(off, ErrInvalidEncoding)
	}

	r := rune(b0) & (0x7F >> info.size)
	for i := 1; i < info.size; i++ {
		if off+i >= len(s) {
			return 0, 0, decodeError(off, ErrTruncatedInput)
		}
		c := s[off+i]
		lo, hi := byte(0x80), byte(0xBF)
		if i == 1 {
			lo, hi = info.accept.lo, info.accept.hi
		}
		if c < lo || c > hi {
			return 0, 0, decodeError(off, ErrInvalidEncoding)
		}
		r = r<<6 | rune(c&0x3F)
	}
	return r, info.size, nil
}

// Len returns the number of bytes required to encode r, or -1 if r is not
// encodable.
func Len(r rune) int {
	switch {
	case r < 0:
		return -1
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r >= surrogateMin && r <= surrogateMax:
		return -1
	case r < 0x10000:
		return 3
	case r <= MaxRune:
		return 4
	}
	return -1
}

// ValidRune reports whether r can be encoded.
func ValidRune(r rune) bool {
	return Len(r) > 0
}

// AppendRune appends the UTF-8 encoding of r to dst.
func AppendRune(dst []byte, r rune) ([]byte, error) {
	switch Len(r) {
	case 1:
		return append(dst, byte(r)), nil
	case 2:
		return append(dst, 0xC0|byte(r>>6), 0x80|byte(r)&0x3F), nil
	case 3:
		return append(dst, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F), nil
	case 4:
		return append(dst, 0xF0|byte(r>>18), 0x80|byte(r>>12)&0x3F,
			0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F), nil
	}
	return dst, encodeError(r)
}

// Encode returns the UTF-8 encoding of r.
func Encode(r rune) ([]byte, error) {
	return AppendRune(make([]byte, 0, 4), r)
}
