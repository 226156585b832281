package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPort はフロントエンド配信用の固定ポート
const DefaultPort = 8000

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig
	Static StaticConfig
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string // リッスンするホスト (空文字列または0.0.0.0で全インターフェース)
	Port int    // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration // 読み込みタイムアウト
	WriteTimeout time.Duration // 書き込みタイムアウト (0で無効)
}

// StaticConfig は静的ファイル配信の設定
type StaticConfig struct {
	// 配信ルートディレクトリ。空の場合は実行ファイルのディレクトリを使う
	Root string

	// 拡張子 → Content-Type の上書き。標準の推論より優先される
	ContentTypes map[string]string

	// 拡張子から推論できないファイルを中身から判定するか
	SniffUnknown bool
}

// DefaultContentTypes はブラウザにスクリプトとして実行させるための上書き設定を返す
func DefaultContentTypes() map[string]string {
	return map[string]string{
		".ts":  "application/javascript",
		".tsx": "application/javascript",
	}
}

// Load は設定を読み込む
// 設定ファイルは持たず、デフォルト値を環境変数で上書きする
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SPARKSERVE_HOST", "0.0.0.0"),
			Port:         getEnvAsIntOrDefault("SPARKSERVE_PORT", DefaultPort),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // 大きなファイル配信のためタイムアウト無効化
		},
		Static: StaticConfig{
			Root:         getEnvOrDefault("SPARKSERVE_ROOT", ""),
			ContentTypes: DefaultContentTypes(),
			SniffUnknown: getEnvAsBoolOrDefault("SPARKSERVE_SNIFF", false),
		},
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("タイムアウトに負の値は指定できません")
	}

	for ext, contentType := range c.Static.ContentTypes {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("無効な拡張子: %q", ext)
		}
		if strings.TrimSpace(contentType) == "" {
			return fmt.Errorf("拡張子 %s のContent-Typeが空です", ext)
		}
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得する
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
