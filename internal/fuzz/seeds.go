package fuzztests

import "testing"

const (
	maxFuzzInput = 1 << 16 // 64 KiB
)

var programSeeds = []string{
	"",
	"var a = 1;\n",
	"class C {\n  mv: number;\n  mv2 = 1;\n  static smv = 3;\n  constructor() { this.f = 1; }\n}\n",
	"class A extends B {\n  x = 1;\n  constructor(a) { super(a); this.y = a; }\n}\n",
	"/** @type {Array.<?string>} */\nvar xs = [];\n",
	"class D {\n  /** @type {function(this:D, number=, ...string): boolean} */\n  cb;\n}\n",
	"function f(a: number, b?: string): void {}\n",
	"var a = 1 var b = 2;",
	"class { x = }",
	"class E { static { } ;;; }",
}

var typeSeeds = []string{
	"number",
	"?string",
	"!Object",
	"Array.<?string>",
	"Object.<string, number>",
	"{a: number, b}",
	"function(new:Foo, ...*): ?",
	"(string|number)=",
	"Array<number | null>",
	"number[][]",
	"{ a?: string; b: boolean }",
	"(a: number, ...rest: string[]) => void",
	"Array<",
}

func addProgramSeeds(f *testing.F) {
	for _, s := range programSeeds {
		f.Add([]byte(s))
	}
}

func addTypeSeeds(f *testing.F) {
	for _, s := range typeSeeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
