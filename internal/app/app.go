// Package app はサーバーの起動手順をまとめます。
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"

	"sparkserve/internal/banner"
	"sparkserve/internal/config"
	"sparkserve/internal/contenttype"
	"sparkserve/internal/lanip"
	"sparkserve/internal/server"
)

// ChdirToExecutable は作業ディレクトリを実行ファイルのあるディレクトリに変更する
// 起動したディレクトリに関係なく同じファイルを配信するため
func ChdirToExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("実行ファイルのパスの取得に失敗: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Dir(exe)
	if err := os.Chdir(dir); err != nil {
		return "", fmt.Errorf("作業ディレクトリの変更に失敗: %w", err)
	}
	return dir, nil
}

// Run は待ち受けを開始し、接続方法を表示してから終了まで配信を続ける
// 待ち受けに失敗した場合だけエラーを返して起動を中止する
func Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	table := contenttype.New(cfg.Static.ContentTypes, cfg.Static.SniffUnknown)
	srv := server.New(cfg, table)
	log.Printf("Content-Typeの上書き設定: %v", table.Overrides())

	if err := srv.Listen(ctx); err != nil {
		return err
	}

	port := cfg.Server.Port
	if addr, ok := srv.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	info := banner.Info{
		Port:  port,
		LANIP: lanip.New().Resolve(ctx),
	}
	if err := banner.Print(out, info); err != nil {
		return fmt.Errorf("起動メッセージの出力に失敗: %w", err)
	}

	return srv.Serve(ctx)
}
