// Package contenttype は拡張子からContent-Typeを決める対応表を提供します。
//
// 対応表は起動時に一度だけ構築され、以降は読み取り専用です。
// mime.AddExtensionType によるプロセス全体の登録は行いません。
package contenttype

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

// Fallback は推論できなかったファイルに付けるContent-Type
const Fallback = "application/octet-stream"

// Table は拡張子 → Content-Type の不変な対応表
type Table struct {
	overrides    map[string]string
	sniffUnknown bool
}

// New は上書き設定から対応表を作成する
// 拡張子は小文字に正規化される
func New(overrides map[string]string, sniffUnknown bool) *Table {
	return &Table{
		overrides: lo.MapEntries(overrides, func(ext, contentType string) (string, string) {
			return strings.ToLower(ext), contentType
		}),
		sniffUnknown: sniffUnknown,
	}
}

// TypeByExtension は拡張子に対応するContent-Typeを返す
// 上書き設定、システムの推論の順に参照し、不明な場合は空文字列を返す
func (t *Table) TypeByExtension(ext string) string {
	if ext == "" {
		return ""
	}
	if contentType, ok := t.overrides[strings.ToLower(ext)]; ok {
		return contentType
	}
	return mime.TypeByExtension(ext)
}

// TypeForFile はファイル名と内容からContent-Typeを決める
// 中身を読んだ場合は先頭まで巻き戻してから返す
func (t *Table) TypeForFile(name string, content io.ReadSeeker) (string, error) {
	if contentType := t.TypeByExtension(filepath.Ext(name)); contentType != "" {
		return contentType, nil
	}
	if !t.sniffUnknown || content == nil {
		return Fallback, nil
	}

	detected, err := mimetype.DetectReader(content)
	if err != nil {
		return "", fmt.Errorf("Content-Typeの判定に失敗: %w", err)
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ファイルの巻き戻しに失敗: %w", err)
	}
	return detected.String(), nil
}

// Overrides は上書き設定のコピーを返す
func (t *Table) Overrides() map[string]string {
	return lo.Assign(t.overrides)
}
