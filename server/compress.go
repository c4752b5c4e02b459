package server

import (
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// API responses are brotli-encoded when the client sends Accept-Encoding: br.
const brotliLevel = 5

type brotliWriter struct {
	gin.ResponseWriter
	writer *brotli.Writer
	wrote  bool
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	w.wrote = true
	return w.writer.Write(data)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *brotliWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(coding, "br") {
			return true
		}
	}
	return false
}

func brotliMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}
		c.Header("Content-Encoding", "br")
		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{ResponseWriter: c.Writer, writer: brotli.NewWriterLevel(c.Writer, brotliLevel)}
		c.Writer = bw
		defer func() {
			if bw.wrote {
				bw.writer.Close()
			}
			c.Writer = bw.ResponseWriter
		}()
		c.Next()
	}
}
