package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gostarstyle/pkg/langdetect"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    style.Mode
		wantOK  bool
	}{
		{name: "javascript", path: "src/app.js", want: style.ModeJavaScript, wantOK: true},
		{name: "es module", path: "src/app.mjs", want: style.ModeJavaScript, wantOK: true},
		{name: "jsx", path: "src/App.jsx", want: style.ModeJavaScript, wantOK: true},
		{name: "typescript", path: "src/app.ts", want: style.ModeTypeScript, wantOK: true},
		{name: "tsx", path: "src/App.tsx", want: style.ModeTypeScript, wantOK: true},
		{name: "upper case extension", path: "LEGACY.JS", want: style.ModeJavaScript, wantOK: true},
		{
			name:    "node shebang",
			path:    "bin/cli",
			content: "#!/usr/bin/env node\nconsole.log(1);\n",
			want:    style.ModeJavaScript,
			wantOK:  true,
		},
		{name: "go source", path: "main.go", content: "package main\n"},
		{name: "markdown", path: "README.md"},
		{name: "no extension", path: "Makefile", content: "all:\n\techo hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := langdetect.Detect(tt.path, []byte(tt.content))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsSupported("a.ts"))
	assert.True(t, langdetect.IsSupported("dir/b.js"))
	assert.False(t, langdetect.IsSupported("c.css"))
	assert.False(t, langdetect.IsSupported(""))
}

func TestDetectContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, style.ModeJavaScript, langdetect.DetectContent([]byte("#!/usr/bin/env node\nrun();\n")))
	assert.Equal(t, style.ModeJavaScript, langdetect.DetectContent(nil))
}
