// Package main はsparkserveサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"sparkserve/internal/app"
	"sparkserve/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// コマンドラインオプション
	var (
		host = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port = flag.Int("port", 0, "サーバーのポート (デフォルト: 8000)")
		root = flag.String("root", "", "配信するディレクトリ (デフォルト: 実行ファイルのディレクトリ)")
		help = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("sparkserve")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	gin.SetMode(gin.ReleaseMode)

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Static.Root = *root
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	if cfg.Static.Root == "" {
		if _, err := app.ChdirToExecutable(); err != nil {
			log.Fatalf("配信ディレクトリの準備に失敗しました: %v", err)
		}
	}

	log.Printf("sparkserve を起動します: %s", cfg.ServerAddress())
	if err := app.Run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
