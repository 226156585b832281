// Package banner は起動時に接続方法を案内するメッセージを出力します。
package banner

import (
	"fmt"
	"io"
	"strings"
)

// Info はバナーに表示する接続情報
type Info struct {
	Port  int
	LANIP string
}

// LocalURL はこのコンピューターから接続するためのURL
func (i Info) LocalURL() string {
	return fmt.Sprintf("http://localhost:%d", i.Port)
}

// LANURL は同じネットワーク上の端末から接続するためのURL
func (i Info) LANURL() string {
	return fmt.Sprintf("http://%s:%d", i.LANIP, i.Port)
}

// Print は接続方法を w に書き出す
func Print(w io.Writer, info Info) error {
	rule := strings.Repeat("=", 50)

	lines := []string{
		"",
		rule,
		"🚀 算数スパークアプリが起動しました!",
		rule,
		"",
		"1. このコンピューターから接続する場合:",
		"   👉 " + info.LocalURL(),
		"",
		"2. スマートフォンなど他の端末から接続する場合:",
		"   👉 " + info.LANURL(),
		"",
		"※ 注意: 端末とこのコンピューターは同じWi-Fiに接続してください。",
		rule,
		"",
		"サーバーを停止するには Ctrl+C を押してください。",
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
