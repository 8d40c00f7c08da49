package fuzztests

import (
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
)

// Seeds avoid imports: the source importer type-checks the standard library
// from source, which is far too slow per fuzz iteration.
var seeds = []string{
	"",
	"package p\n",
	"package p\n\nvar x = 1 // $ExpectType int\n",
	"package p\n\n// $ExpectType string\nvar s = \"a\" + \"b\"\n",
	"package p\n\nfunc f() {\n\t// $ExpectError mismatched types\n\t_ = 1 + \"a\"\n}\n",
	"package p\n\nfunc f() {\n\t// $ExpectError /undefined: [a-z]+/\n\t_ = y\n}\n",
	"package p\n\nvar a, b = 1, 2.0 // $ExpectType int // $ExpectType float64\n",
	"package p\n\ntype T struct{ n int }\n\nfunc (t T) N() int { return t.n }\n\n// $ExpectType func() int\nvar m = T{}.N\n",
	"package p\n\nfunc g[T any](v T) T { return v }\n\nvar v = g(3) // $ExpectType int\n",
	"package p\n\n// $ExpectType\nvar x = 1\n",
	"package p\n\n// $ExpectType int\n",
	"package p\n\nvar x = // $ExpectType int\n",
	"package p\n\n/* $ExpectType int */ var x = 1\n",
	"package p; func f() { { { { } } } }",
	"package p\n\nfunc f() { for i := 0 i < 10 i++ {} }\n",
	"\xff\xfe package p",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
