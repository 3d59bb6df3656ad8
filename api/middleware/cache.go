package middleware

import (
	"bytes"
	"net/http"

	"yatube/services"

	"github.com/gin-gonic/gin"
)

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache отдает закешированную копию страницы, если она еще жива,
// иначе рендерит страницу и кеширует результат. Ключ включает путь
// и полную query string, чтобы страницы пагинации не смешивались.
// Кешируются только успешные ответы.
func PageCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		cache := services.PageCacheInstance
		if cache == nil {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if page, ok := cache.Get(c.Request.Context(), key); ok {
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() == http.StatusOK {
			cache.Set(c.Request.Context(), key, services.CachedPage{
				Status:      writer.Status(),
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			})
		}
	}
}
