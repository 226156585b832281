package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 全レスポンスに付与するヘッダー
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderCacheControl = "Cache-Control"
	HeaderRequestID    = "X-Request-Id"

	AllowAnyOrigin = "*"
	NoCache        = "no-cache, no-store, must-revalidate"
)

// commonHeaders は全レスポンスに付けるヘッダーを返す
func commonHeaders() http.Header {
	h := http.Header{}
	h.Set(HeaderAllowOrigin, AllowAnyOrigin)
	h.Set(HeaderCacheControl, NoCache)
	return h
}

// headerWriter はステータス送信の直前に共通ヘッダーを書き込む
// net/httpのエラー応答はCache-Controlを削除するため、送信直前に付け直す
type headerWriter struct {
	gin.ResponseWriter
	headers http.Header
}

func (w *headerWriter) apply() {
	if w.Written() {
		return
	}
	dst := w.Header()
	for key, values := range w.headers {
		dst[key] = append([]string(nil), values...)
	}
}

func (w *headerWriter) WriteHeader(code int) {
	w.apply()
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) WriteHeaderNow() {
	w.apply()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *headerWriter) Write(data []byte) (int, error) {
	w.apply()
	return w.ResponseWriter.Write(data)
}

func (w *headerWriter) WriteString(s string) (int, error) {
	w.apply()
	return w.ResponseWriter.WriteString(s)
}

func (w *headerWriter) Flush() {
	w.apply()
	w.ResponseWriter.Flush()
}

// responseHeaders はCORS許可とキャッシュ無効化のヘッダーを全レスポンスに付与する
func responseHeaders() gin.HandlerFunc {
	headers := commonHeaders()

	return func(c *gin.Context) {
		writer := &headerWriter{ResponseWriter: c.Writer, headers: headers}
		writer.apply()
		c.Writer = writer

		c.Next()
	}
}

// requestLogger はリクエストIDを発行し、1リクエストにつき1行のアクセスログを出力する
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header(HeaderRequestID, requestID)

		c.Next()

		log.Printf("%s %s %q %d %s [%s]",
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.RequestURI(),
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
			requestID,
		)
	}
}
