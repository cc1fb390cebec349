package style_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gostarstyle/pkg/style"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    style.Mode
		wantErr bool
	}{
		{input: "js", want: style.ModeJavaScript},
		{input: "JavaScript", want: style.ModeJavaScript},
		{input: "ts", want: style.ModeTypeScript},
		{input: " typescript ", want: style.ModeTypeScript},
		{input: "coffee", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := style.ParseMode(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, style.ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		mode  style.Mode
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \n\t\n",
			want:  "",
		},
		{
			name:  "control structure",
			input: "if(x){doThing();}else{doOther();}",
			want:  "if(x)\n{\n    doThing();\n}\nelse\n{\n    doOther();\n}",
		},
		{
			name:  "typescript return type",
			input: "function foo():number{return 1;}",
			mode:  style.ModeTypeScript,
			want:  "function foo() : number\n{\n    return 1;\n}",
		},
		{
			name:  "anonymous return object",
			input: "function bar() { return { a: 1, b: 2 }; }",
			want:  "function bar()\n{\n    return { a: 1, b: 2 };\n}",
		},
		{
			name:  "collapsed return object",
			input: "function getSocials()\n{\nreturn\n{\nsocials: 1\n};\n}",
			want:  "function getSocials()\n{\n    return {\n        socials: 1\n    };\n}",
		},
		{
			name:  "doc comment before function",
			input: "const a = 1;\n/**\n * Adds.\n */\nfunction add(a, b) {\nreturn a + b;\n}",
			want:  "const a = 1;\n\n\n/**\n* Adds.\n*/\nfunction add(a, b)\n{\n    return a + b;\n}",
		},
		{
			name:  "comment after imports stays with code",
			input: "import a from 'a';\n// helper\nconst b = 2;",
			want:  "import a from 'a';\n\n\n// helper\nconst b = 2;",
		},
		{
			name:  "imports are never indented",
			input: "import a from 'a'\nimport {\nb\n} from 'b'\nfoo();",
			want:  "import a from 'a'\nimport { b } from 'b'\n\n\nfoo();",
		},
		{
			name:  "doc comment after import",
			input: "import a from 'a';\n/** doc */\nfunction f() {}",
			want:  "import a from 'a';\n\n\n/** doc */\nfunction f()\n{\n}",
		},
		{
			name:  "unbalanced closing braces clamp at zero",
			input: "}\n}\nfoo();",
			want:  "}\n}\nfoo();",
		},
		{
			name:  "consecutive exports are not separated",
			input: "export const a = 1;\nexport const b = 2;",
			want:  "export const a = 1;\nexport const b = 2;",
		},
		{
			name:  "trailing newline is kept",
			input: "a();\n",
			want:  "a();\n",
		},
		{
			name:  "callback",
			input: "items.forEach((item) => {\n  console.log(item);\n});",
			want:  "items.forEach((item) =>\n{\n    console.log(item);\n}\n);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mode := tt.mode
			if mode == "" {
				mode = style.ModeJavaScript
			}

			assert.Equal(t, tt.want, style.Format(tt.input, mode))
		})
	}
}

func TestFormat_CloserWithTrailingTextEndsCommentBlock(t *testing.T) {
	t.Parallel()

	input := "const a = 1;\n/* header\n*/ // trailing\nfunction f() {}\nconst b = 2;\n/** doc */\nfunction g() {}"

	got := style.Format(input, style.ModeJavaScript)

	assert.Contains(t, got, "const a = 1;\n\n\n/* header\n")
	assert.Contains(t, got, "const b = 2;\n\n\n/** doc */\nfunction g()")
}

func TestFormat_ControlStructureDepths(t *testing.T) {
	t.Parallel()

	got := style.Format("if(x){doThing();}else{doOther();}", style.ModeJavaScript)

	var depths []int
	for _, line := range strings.Split(got, "\n") {
		depths = append(depths, (len(line)-len(strings.TrimLeft(line, " ")))/4)
	}

	assert.Equal(t, []int{0, 0, 1, 0, 0, 0, 1, 0}, depths)
}

func TestFormat_Class(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"import a from 'a';",
		"class Foo {",
		"constructor() {",
		"this.x = 1;",
		"}",
		"bar() {",
		"return {",
		"x: 1",
		"};",
		"}",
		"}",
	}, "\n")

	want := strings.Join([]string{
		"import a from 'a';",
		"",
		"",
		"class Foo",
		"{",
		"",
		"    constructor()",
		"    {",
		"        this.x = 1;",
		"    }",
		"",
		"",
		"    bar()",
		"    {",
		"        return {",
		"            x: 1",
		"        };",
		"    }",
		"}",
	}, "\n")

	assert.Equal(t, want, style.Format(input, style.ModeJavaScript))
}

func TestFormatter_Spacing(t *testing.T) {
	t.Parallel()

	t.Run("before functions", func(t *testing.T) {
		t.Parallel()

		f := style.New(style.Spacing{BeforeFunctions: 1})
		assert.Equal(t, "a();\n\nfunction b()\n{\n}", f.Format("a();\nfunction b() {}", style.ModeJavaScript))
	})

	t.Run("before classes", func(t *testing.T) {
		t.Parallel()

		f := style.New(style.Spacing{BeforeFunctions: 1, BeforeClasses: 3})
		assert.Equal(t, "a();\n\n\n\nclass X\n{\n}", f.Format("a();\nclass X {}", style.ModeJavaScript))
	})

	t.Run("export default class", func(t *testing.T) {
		t.Parallel()

		f := style.New(style.Spacing{BeforeFunctions: 1, BeforeClasses: 2})
		assert.Equal(t,
			"a();\n\n\nexport default class X\n{\n}",
			f.Format("a();\nexport default class X {}", style.ModeJavaScript))
	})

	t.Run("after imports disabled", func(t *testing.T) {
		t.Parallel()

		f := style.New(style.Spacing{})
		assert.Equal(t, "import a from 'a';\nfoo();", f.Format("import a from 'a';\nfoo();", style.ModeJavaScript))
	})

	t.Run("negative counts act as zero", func(t *testing.T) {
		t.Parallel()

		f := style.New(style.Spacing{BeforeFunctions: -3, AfterImports: -1})
		assert.Equal(t, "a();\nfunction b()\n{\n}", f.Format("a();\nfunction b() {}", style.ModeJavaScript))
	})
}

func TestFormat_Properties(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"if(x){doThing();}else{doOther();}",
		"function foo():number{return 1;}",
		"function bar() { return { a: 1, b: 2 }; }",
		"import {\n  Foo,\n  Bar\n} from 'x';\nexport class Baz extends Foo {\nconstructor(a) {\nsuper(a);\n}\nrender() {\nreturn `<p>${this.a}</p>`;\n}\n}\n",
		"const config = {\nitems: [{a: 1}, {b: 2}],\nname: \"x { y } z\",\n};\n",
		"/**\n * Entry point.\n */\nexport function main() {\nif (ready) {\nrun();\n} else if (retry) {\nwait();\n} else {\nfail();\n}\n}\n",
		"function getSocials() { return { socials: { \"friends\": [52, 432, 69] } }; }",
		"function a()\n{\nreturn\n{\nb: 1\n};\n}",
		"}}}\n{{{\nx();",
		"items.map((i) => { return { id: i }; });",
		"const s = 'it\\'s {';\nconst t = {{name}};",
	}

	for _, mode := range []style.Mode{style.ModeJavaScript, style.ModeTypeScript} {
		for _, input := range corpus {
			once := style.Format(input, mode)

			assert.Equal(t, once, style.Format(once, mode), "idempotence for %q", input)
			assert.Equal(t, strings.Count(input, "{"), strings.Count(once, "{"), "open braces for %q", input)
			assert.Equal(t, strings.Count(input, "}"), strings.Count(once, "}"), "close braces for %q", input)

			for _, line := range strings.Split(once, "\n") {
				indent := len(line) - len(strings.TrimLeft(line, " "))
				assert.Zero(t, indent%4, "indent of %q in output of %q", line, input)
			}
		}
	}
}

func TestFormat_StringLiteralsUnbroken(t *testing.T) {
	t.Parallel()

	input := "function f() {\nconst a = \"x { y } z\";\nconst b = 'if (a) { b } else { c }';\nconst c = `t: {${v}}`;\n}"
	got := style.Format(input, style.ModeTypeScript)

	assert.Contains(t, got, `"x { y } z"`)
	assert.Contains(t, got, `'if (a) { b } else { c }'`)
	assert.Contains(t, got, "`t: {${v}}`")
}

func TestFormatter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := style.New(style.DefaultSpacing())
	input := "/* a */\nfunction x() {}\n/*\n * open\nfunction y() {}"
	want := f.Format(input, style.ModeJavaScript)

	done := make(chan string, 8)
	for range 8 {
		go func() {
			done <- f.Format(input, style.ModeJavaScript)
		}()
	}
	for range 8 {
		assert.Equal(t, want, <-done)
	}
}
