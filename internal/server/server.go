package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sparkserve/internal/config"
	"sparkserve/internal/contenttype"

	"github.com/gin-gonic/gin"
)

// ErrNotListening はListen前にServeが呼ばれたことを示す
var ErrNotListening = errors.New("サーバーがまだ待ち受けていません")

// Server は静的ファイルを配信するHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	table      *contenttype.Table
	root       http.Dir
	files      http.Handler
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
}

// New は新しいServerインスタンスを作成する
// table は起動時に一度だけ作られ、以降は読み取りのみ行われる
func New(cfg *config.Config, table *contenttype.Table) *Server {
	root := cfg.Static.Root
	if root == "" {
		root = "."
	}

	s := &Server{
		config: cfg,
		table:  table,
		root:   http.Dir(root),
		engine: gin.New(),
	}
	s.files = http.FileServer(s.root)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      s.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// setupRoutes はミドルウェアとルートを設定する
// ファイル配信以外のルートは持たないため、全てのリクエストがNoRouteに届く
func (s *Server) setupRoutes() {
	s.engine.Use(responseHeaders(), requestLogger(), gin.Recovery())
	s.engine.NoRoute(s.serveStatic)
}

// Handler はリクエストを処理するhttp.Handlerを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen は設定されたアドレスで待ち受けを開始する
// ポートが使用中の場合は即座にエラーを返す
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("ポート %d での待ち受けに失敗: %w", s.config.Server.Port, err)
	}

	s.listener = listener
	return nil
}

// Addr は待ち受けているアドレスを返す
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve はコンテキストのキャンセルかシグナルを受け取るまでリクエストを処理する
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return ErrNotListening
	}

	serveCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-serveCh:
		return err
	}

	return s.Close()
}

// Start は待ち受けを開始してリクエストを処理する
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(ctx); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Close は処理中のリクエストを待たずにサーバーを停止する
func (s *Server) Close() error {
	if err := s.httpServer.Close(); err != nil {
		return fmt.Errorf("サーバーの停止に失敗: %w", err)
	}

	log.Println("サーバーを停止しました")
	return nil
}
