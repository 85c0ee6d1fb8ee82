// Package web serves the browser upload page.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed static
var assets embed.FS

// StaticHandler serves the embedded upload page and its assets
type StaticHandler struct {
	files fs.FS
}

// NewStaticHandler creates a handler over the embedded assets
func NewStaticHandler() *StaticHandler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return &StaticHandler{files: sub}
}

// Register mounts the page at / and the assets under /static.
func (h *StaticHandler) Register(router gin.IRouter) {
	router.GET("/", h.serve)
	router.GET("/index.html", h.serve)
	router.GET("/static/*filepath", h.serve)
}

func (h *StaticHandler) serve(c *gin.Context) {
	name := path.Clean(c.Request.URL.Path)
	name = strings.TrimPrefix(name, "/static")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "index.html"
	}

	data, err := fs.ReadFile(h.files, name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	// Set caching headers for static assets
	if name != "index.html" {
		c.Header("Cache-Control", "public, max-age=3600")
	}
	c.Data(http.StatusOK, getContentType(name), data)
}

// getContentType returns the appropriate content type for a file
func getContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
