package server

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// serveStatic はリクエストのパスをルートディレクトリから解決して配信する
func (s *Server) serveStatic(c *gin.Context) {
	r := c.Request

	// NoRouteではginが404を設定済みなので、一覧表示のように
	// WriteHeaderを呼ばずに書き込む応答のために200へ戻しておく
	c.Status(http.StatusOK)

	// GETとHEAD以外は扱わない
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		c.Header("Allow", "GET, HEAD")
		c.String(http.StatusNotImplemented, "サポートされていないメソッドです: %s", r.Method)
		return
	}

	name := path.Clean("/" + r.URL.Path)

	file, err := s.root.Open(name)
	if err != nil {
		s.serveError(c, err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		s.serveError(c, err)
		return
	}

	// ディレクトリはindex.htmlまたは一覧の表示をFileServerに任せる
	if info.IsDir() {
		s.files.ServeHTTP(c.Writer, r)
		return
	}

	// 末尾がスラッシュならディレクトリを指しているので、ファイルは該当しない
	if strings.HasSuffix(r.URL.Path, "/") {
		s.serveError(c, fs.ErrNotExist)
		return
	}

	contentType, err := s.table.TypeForFile(info.Name(), file)
	if err != nil {
		s.serveError(c, err)
		return
	}
	c.Header("Content-Type", contentType)

	// /index.html もリダイレクトせずにそのまま返す
	http.ServeContent(c.Writer, r, info.Name(), info.ModTime(), file)
}

// serveError はファイルを開けなかった理由をステータスコードに変換して返す
func (s *Server) serveError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Printf("ファイルの配信に失敗しました: %s: %v", c.Request.URL.Path, err)
	}
	c.String(status, "%d %s", status, http.StatusText(status))
}

// statusFromError はファイルシステムのエラーに対応するHTTPステータスを返す
func statusFromError(err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
