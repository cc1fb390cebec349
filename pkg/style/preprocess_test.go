package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gostarstyle/pkg/style"
)

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		mode  style.Mode
		want  []string
	}{
		{
			name:  "multi-line import is coalesced",
			input: "import {\n  Foo,\n  Bar\n} from 'x';",
			want:  []string{"import { Foo, Bar } from 'x';"},
		},
		{
			name:  "import without semicolon ends at closing quote",
			input: "import a from 'a'\nconst b = 1;",
			want:  []string{"import a from 'a'", "const b = 1;"},
		},
		{
			name:  "next import ends statement and is kept",
			input: "import a\nimport b from 'b';",
			want:  []string{"import a", "import b from 'b';"},
		},
		{
			name:  "empty line ends import",
			input: "import {\n\nfoo();",
			want:  []string{"import {", "foo();"},
		},
		{
			name:  "require statement",
			input: "require('x');",
			want:  []string{"require('x');"},
		},
		{
			name:  "line comment is untouched",
			input: "// if (a) { b } else { c }",
			want:  []string{"// if (a) { b } else { c }"},
		},
		{
			name:  "block comment lines are trimmed only",
			input: "/**\n * Doc {x}\n */",
			want:  []string{"/**", "* Doc {x}", "*/"},
		},
		{
			name:  "if else on one line",
			input: "if(x){doThing();}else{doOther();}",
			want:  []string{"if(x)", "{", "doThing();", "}", "else", "{", "doOther();", "}"},
		},
		{
			name:  "else if",
			input: "} else if (a) {",
			want:  []string{"}", "else if (a)", "{"},
		},
		{
			name:  "braces in double quotes",
			input: `const s = "a { b } c";`,
			want:  []string{`const s = "a { b } c";`},
		},
		{
			name:  "escaped quote does not end string",
			input: `const s = 'it\'s {';`,
			want:  []string{`const s = 'it\'s {';`},
		},
		{
			name:  "else inside string is not rewritten",
			input: `log("} else {");`,
			want:  []string{`log("} else {");`},
		},
		{
			name:  "braces in template literal",
			input: "const s = `${a} {b}`;",
			want:  []string{"const s = `${a} {b}`;"},
		},
		{
			name:  "closing brace with semicolon",
			input: "const a = {b: 1};",
			want:  []string{"const a =", "{", "b: 1", "};"},
		},
		{
			name:  "closing brace with comma",
			input: "[{a: 1}, {b: 2}]",
			want:  []string{"[", "{", "a: 1", "},", "{", "b: 2", "}", "]"},
		},
		{
			name:  "adjacent closing braces split",
			input: "function a() { if (x) { y(); }}",
			want:  []string{"function a()", "{", "if (x)", "{", "y();", "}", "}"},
		},
		{
			name:  "template placeholder kept literal",
			input: "const t = {{name}};",
			want:  []string{"const t = {{name}};"},
		},
		{
			name:  "return object inside a line stays atomic",
			input: "function bar() { return { a: 1, b: 2 }; }",
			want:  []string{"function bar()", "{", "return { a: 1, b: 2 };", "}"},
		},
		{
			name:  "whole line return object is not split",
			input: "return { a: { b: 1 } };",
			want:  []string{"return { a: { b: 1 } };"},
		},
		{
			name:  "open return object",
			input: "return {",
			want:  []string{"return {"},
		},
		{
			name:  "typescript return type",
			input: "function foo():number{return 1;}",
			mode:  style.ModeTypeScript,
			want:  []string{"function foo() : number", "{", "return 1;", "}"},
		},
		{
			name:  "javascript leaves colon alone",
			input: "function foo():number{return 1;}",
			want:  []string{"function foo():number", "{", "return 1;", "}"},
		},
		{
			name:  "typescript colon inside string",
			input: `const s = "f():T";`,
			mode:  style.ModeTypeScript,
			want:  []string{`const s = "f():T";`},
		},
		{
			name:  "carriage returns are trimmed",
			input: "a();\r\nb();\r\n",
			want:  []string{"a();", "b();"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mode := tt.mode
			if mode == "" {
				mode = style.ModeJavaScript
			}

			assert.Equal(t, tt.want, style.Preprocess(tt.input, mode))
		})
	}
}

func TestPreprocess_BlankInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, style.Preprocess("", style.ModeJavaScript))
	assert.Empty(t, style.Preprocess("  \n\t\n", style.ModeJavaScript))
}
