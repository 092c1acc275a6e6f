package ustring_test

import (
	"fmt"
	"strings"

	"github.com/coregx/ustring"
)

// ExampleLen counts code points, not bytes.
func ExampleLen() {
	n, _ := ustring.Len("héllo")
	fmt.Println(n, len("héllo"))
	// Output: 5 6
}

// ExampleSub demonstrates 1-based inclusive slicing.
func ExampleSub() {
	s, _ := ustring.Sub("héllo", 2, 3)
	fmt.Println(s)
	// Output: él
}

// ExampleFind demonstrates searching with captures.
func ExampleFind() {
	m, _ := ustring.Find("abc123", "%d+", 1, false)
	fmt.Println(m.Start, m.End)
	// Output: 4 6
}

// ExampleMatchString demonstrates extracting captures.
func ExampleMatchString() {
	caps, _ := ustring.MatchString("key=value", "(%w+)=(%w+)", 1)
	fmt.Println(caps[0], caps[1])
	// Output: key value
}

// ExampleGMatch demonstrates iterating over matches.
func ExampleGMatch() {
	it, _ := ustring.GMatch("naïve café crème", "[^ ]+")
	var words []string
	for it.Next() {
		words = append(words, it.Captures()[0].Value)
	}
	fmt.Println(strings.Join(words, "|"))
	// Output: naïve|café|crème
}

// ExampleGSub demonstrates template replacement.
func ExampleGSub() {
	out, n, _ := ustring.GSub("hello world", "o", "0", -1)
	fmt.Println(out, n)
	// Output: hell0 w0rld 2
}

// ExampleGSubFunc demonstrates callback replacement.
func ExampleGSubFunc() {
	out, _, _ := ustring.GSubFunc("the quick fox", "%a+", func(caps []ustring.Capture) string {
		first, _ := ustring.Sub(caps[0].Value, 1, 1)
		rest, _ := ustring.Sub(caps[0].Value, 2, -1)
		up, _ := ustring.ToUpper(first)
		return up + rest
	}, -1)
	fmt.Println(out)
	// Output: The Quick Fox
}

// ExamplePattern_GSub demonstrates reusing a compiled pattern.
func ExamplePattern_GSub() {
	p := ustring.MustCompile("(%w+)%s*=%s*(%w+)")
	out, _, _ := p.GSub("a = 1, b=2", "%2=%1", -1)
	fmt.Println(out)
	// Output: 1=a, 2=b
}

// ExampleToUpper demonstrates simple case mapping.
func ExampleToUpper() {
	s, _ := ustring.ToUpper("straße в москве")
	fmt.Println(s)
	// Output: STRAßE В МОСКВЕ
}

// ExampleNewReplacer demonstrates multi-literal replacement.
func ExampleNewReplacer() {
	r, _ := ustring.NewReplacer("«", "\"", "»", "\"")
	out, n, _ := r.Replace("«bonjour»")
	fmt.Println(out, n)
	// Output: "bonjour" 2
}
