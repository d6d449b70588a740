package obfuscator_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hyraft/pkg/obfuscator"
)

func loaderChunks(t *testing.T, loader string) []string {
	t.Helper()

	start := strings.Index(loader, "var c=")
	end := strings.Index(loader, ";\n    var s=c.join")
	require.True(t, start >= 0 && end > start, "not a loader: %q", loader)

	var chunks []string
	require.NoError(t, json.Unmarshal([]byte(loader[start+len("var c="):end]), &chunks))
	return chunks
}

func TestTransform(t *testing.T) {
	t.Parallel()

	o := obfuscator.New(obfuscator.WithoutNumberMangling())

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "strips comments and whitespace",
			src:      "var element = \"ab\"; // note\nvar x = 1;",
			expected: `var el="\x61\u0062";var x=1;`,
		},
		{
			name:     "leaves single-quoted literals alone",
			src:      `console.log('a  //b', "c")`,
			expected: `console.log('a  //b',"\x63")`,
		},
		{
			name:     "keeps property names",
			src:      "element.dataset.event = event;",
			expected: "el.dataset.event=ev;",
		},
		{
			name:     "keeps excluded global",
			src:      "window.neonPulse = new NeonPulse();",
			expected: "window.neonPulse=new NP();",
		},
		{
			name:     "keeps object keys",
			src:      "var o = {handler: 1, action};",
			expected: "var o={handler:1,action:ac};",
		},
		{
			name:     "expands shorthand in literals",
			src:      "f({ callback, event });",
			expected: "f({callback:cb,event:ev});",
		},
		{
			name:     "expands shorthand in destructuring",
			src:      "var {callback} = opts;",
			expected: "var{callback:cb}=opts;",
		},
		{
			name:     "expands shorthand in parameter patterns",
			src:      "({ element }) => element",
			expected: "({element:el})=>el",
		},
		{
			name:     "array elements are not shorthand",
			src:      "[event, callback]",
			expected: "[ev,cb]",
		},
		{
			name:     "call arguments inside blocks are not shorthand",
			src:      "if (a) { f(event, callback) }",
			expected: "if(a){f(ev,cb)}",
		},
		{
			name:     "keeps private names",
			src:      "this.#handler = handler;",
			expected: "this.#handler=hd;",
		},
		{
			name:     "renames spread operands",
			src:      "f(...event)",
			expected: "f(...ev)",
		},
		{
			name:     "collapses empty statements outside parens",
			src:      "for (;;) { a();; }",
			expected: "for(;;){a();}",
		},
		{
			name:     "keeps unary separators",
			src:      "a + +b",
			expected: "a+ +b",
		},
		{
			name:     "block comment separates tokens",
			src:      "return/* x */value",
			expected: "return value",
		},
		{
			name:     "keeps regular expression literals",
			src:      `var re = /\/\/ not a comment/g;`,
			expected: `var re=/\/\/ not a comment/g;`,
		},
		{
			name:     "division is code",
			src:      "a / b",
			expected: "a/b",
		},
		{
			name:     "keeps escape sequences",
			src:      `"a\nb"`,
			expected: `"\x61\nb"`,
		},
		{
			name:     "keeps hex escapes",
			src:      `"\x41BC"`,
			expected: `"\x41\u0042C"`,
		},
		{
			name:     "keeps unicode escapes",
			src:      `"\u0041z"`,
			expected: `"\u0041\u007a"`,
		},
		{
			name:     "keeps code point escapes",
			src:      `"\u{1F600}!"`,
			expected: `"\u{1F600}\u0021"`,
		},
		{
			name:     "keeps line continuations",
			src:      "\"a\\\nb\"",
			expected: "\"\\x61\\\nb\"",
		},
		{
			name:     "encodes non-latin characters",
			src:      `"é😀x"`,
			expected: `"\xe9\u{1f600}x"`,
		},
		{
			name:     "keeps template literals",
			src:      "const t = `element ${ a }`;",
			expected: "const t=`element ${ a }`;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, o.Transform(tt.src))
		})
	}
}

func TestTransform_CustomTables(t *testing.T) {
	t.Parallel()

	o := obfuscator.New(
		obfuscator.WithoutNumberMangling(),
		obfuscator.WithRenames(map[string]string{"widget": "w", "neonPulse": "np"}),
		obfuscator.WithExclusions("event"),
	)
	assert.Equal(t, "w(event,neonPulse);", o.Transform("widget(event, neonPulse);"))
}

var numberForms = regexp.MustCompile(`^x=(\(41 \+ 1\)|\(84 / 2\)|\(42 \* 1\)|0x2a);$`)

func TestTransform_Numbers(t *testing.T) {
	t.Parallel()

	t.Run("rewrites integers in range", func(t *testing.T) {
		t.Parallel()
		o := obfuscator.New()
		for range 20 {
			assert.Regexp(t, numberForms, o.Transform("x = 42;"))
		}
	})

	t.Run("leaves other numbers", func(t *testing.T) {
		t.Parallel()
		o := obfuscator.New()
		src := "f(5, 100, 1.5, 07, 0x10, a10, {10: z}, 2.75)"
		assert.Equal(t, "f(5,100,1.5,07,0x10,a10,{10:z},2.75)", o.Transform(src))
	})

	t.Run("seeded output is reproducible", func(t *testing.T) {
		t.Parallel()
		src := "var a = [6, 7, 8, 9, 10, 11, 12, 13, 14, 99];"
		first := obfuscator.New(obfuscator.WithSeed(7)).Transform(src)
		second := obfuscator.New(obfuscator.WithSeed(7)).Transform(src)
		assert.Equal(t, first, second)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		o := obfuscator.New(obfuscator.WithoutNumberMangling())
		assert.Equal(t, "x=42;", o.Transform("x = 42;"))
	})
}

func TestSplitAndReassemble(t *testing.T) {
	t.Parallel()

	t.Run("equal chunks", func(t *testing.T) {
		t.Parallel()
		src := "abcdefghijklmnop"
		loader := obfuscator.SplitAndReassemble(src, 8)
		chunks := loaderChunks(t, loader)
		assert.Len(t, chunks, 8)
		assert.Equal(t, src, strings.Join(chunks, ""))
		assert.True(t, strings.HasPrefix(loader, "(function(){\n  try {\n"))
		assert.Contains(t, loader, "document.head.appendChild(e);")
		assert.Contains(t, loader, "console.error('Script load failed:', err);")
	})

	t.Run("fewer characters than parts", func(t *testing.T) {
		t.Parallel()
		chunks := loaderChunks(t, obfuscator.SplitAndReassemble("abc", 8))
		assert.Equal(t, []string{"a", "b", "c"}, chunks)
	})

	t.Run("splits by character", func(t *testing.T) {
		t.Parallel()
		src := "héllo wörld</script>"
		chunks := loaderChunks(t, obfuscator.SplitAndReassemble(src, 3))
		assert.Len(t, chunks, 3)
		assert.Equal(t, src, strings.Join(chunks, ""))
	})

	t.Run("loader never closes the script element", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, obfuscator.SplitAndReassemble("a</script>b", 2), "</script>")
	})

	t.Run("non-positive parts use default", func(t *testing.T) {
		t.Parallel()
		chunks := loaderChunks(t, obfuscator.SplitAndReassemble("abcdefghijklmnop", 0))
		assert.Len(t, chunks, obfuscator.DefaultParts)
	})
}

func TestBlankInput(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "   ", "\n\t"} {
		assert.Empty(t, obfuscator.MultiLayer(src))
		assert.Empty(t, obfuscator.SplitAndReassemble(src, 8))
		assert.Empty(t, obfuscator.Apply(src, obfuscator.MethodMultiLayer))
		assert.Empty(t, obfuscator.Apply(src, obfuscator.MethodSplit))
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	o := obfuscator.New(obfuscator.WithoutNumberMangling())
	src := "var element = 1;"

	assert.Equal(t, src, o.Apply(src, obfuscator.MethodNone))

	split := loaderChunks(t, o.Apply(src, obfuscator.MethodSplit))
	assert.Equal(t, src, strings.Join(split, ""))

	multi := loaderChunks(t, o.Apply(src, obfuscator.MethodMultiLayer))
	assert.LessOrEqual(t, len(multi), obfuscator.MultiLayerParts)
	assert.Equal(t, "var el=1;", strings.Join(multi, ""))

	fallback := loaderChunks(t, o.Apply(src, obfuscator.Method("bogus")))
	assert.Equal(t, "var el=1;", strings.Join(fallback, ""))
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected obfuscator.Method
	}{
		{in: "", expected: obfuscator.MethodMultiLayer},
		{in: "multi_layer", expected: obfuscator.MethodMultiLayer},
		{in: "split", expected: obfuscator.MethodSplit},
		{in: "split_and_reassemble", expected: obfuscator.MethodSplit},
		{in: "NONE", expected: obfuscator.MethodNone},
	}
	for _, tt := range tests {
		m, err := obfuscator.ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, m)
	}

	_, err := obfuscator.ParseMethod("rot13")
	require.ErrorIs(t, err, obfuscator.ErrUnknownMethod)
}
