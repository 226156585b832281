package main

import (
	"context"
	"log"
	"os"

	"sparkserve/internal/app"
	"sparkserve/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// 配信ルートが指定されていなければ実行ファイルの場所から配信する
	if cfg.Static.Root == "" {
		if _, err := app.ChdirToExecutable(); err != nil {
			log.Fatalf("配信ディレクトリの準備に失敗しました: %v", err)
		}
	}

	// サーバーを起動
	if err := app.Run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
