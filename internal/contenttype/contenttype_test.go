package contenttype

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptOverrides() map[string]string {
	return map[string]string{
		".ts":  "application/javascript",
		".TSX": "application/javascript",
	}
}

func TestTable_TypeByExtension(t *testing.T) {
	table := New(scriptOverrides(), false)

	testCases := []struct {
		ext  string
		want string
	}{
		{".ts", "application/javascript"},
		{".tsx", "application/javascript"},
		{".TS", "application/javascript"},
		{".css", "text/css; charset=utf-8"},
		{".png", "image/png"},
		{".definitely-unknown", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.ext, func(t *testing.T) {
			assert.Equal(t, tc.want, table.TypeByExtension(tc.ext))
		})
	}
}

func TestTable_TypeByExtension_HTML(t *testing.T) {
	table := New(nil, false)

	assert.True(t, strings.HasPrefix(table.TypeByExtension(".html"), "text/html"))
}

func TestTable_TypeForFile(t *testing.T) {
	table := New(scriptOverrides(), false)

	contentType, err := table.TypeForFile("src/app.ts", strings.NewReader("console.log(1)"))
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", contentType)

	contentType, err = table.TypeForFile("component.tsx", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", contentType)

	// 推論できない拡張子は汎用バイナリになる
	contentType, err = table.TypeForFile("notes.unknownext", strings.NewReader("plain words"))
	require.NoError(t, err)
	assert.Equal(t, Fallback, contentType)
}

func TestTable_TypeForFile_Sniff(t *testing.T) {
	table := New(nil, true)

	content := strings.NewReader("%PDF-1.4\n%âãÏÓ\n")
	contentType, err := table.TypeForFile("document", content)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)

	// 判定後は先頭から読める
	rest, err := io.ReadAll(content)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(rest, []byte("%PDF-1.4")))
}

func TestTable_TypeForFile_SniffKeepsExtensionFirst(t *testing.T) {
	table := New(scriptOverrides(), true)

	contentType, err := table.TypeForFile("app.ts", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", contentType)
}

func TestTable_Overrides_IsCopy(t *testing.T) {
	overrides := scriptOverrides()
	table := New(overrides, false)

	// 元のマップを変更しても対応表には影響しない
	overrides[".ts"] = "text/plain"
	assert.Equal(t, "application/javascript", table.TypeByExtension(".ts"))

	got := table.Overrides()
	got[".ts"] = "text/plain"
	assert.Equal(t, "application/javascript", table.TypeByExtension(".ts"))
	assert.Contains(t, table.Overrides(), ".tsx")
}
