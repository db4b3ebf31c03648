package cache

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware caches rendered blog pages. Only plain GET requests for
// the blog index and blog post pages participate; filtered views
// (search, category, page query params) always render fresh.
func Middleware(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		slug, ok := slugFromPath(c.Request.URL.Path)
		if !ok || c.Request.URL.RawQuery != "" {
			c.Next()
			return
		}

		if cached, found := ReadCache(slug, maxAge); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK &&
			strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "text/html") {
			WriteCache(slug, writer.body.String())
		}
	}
}

// slugFromPath maps /blog to the index slug and /blog/<slug> to the
// post's slug. Anything else is not cacheable.
func slugFromPath(path string) (string, bool) {
	if path == "/blog" || path == "/blog/" {
		return IndexSlug, true
	}

	rest, ok := strings.CutPrefix(path, "/blog/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
