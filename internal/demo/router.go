package demo

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewChiRouter mounts the page on "/" and the echo endpoint on "/echo".
func NewChiRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.ServePage)
	r.HandleFunc("/echo", s.ServeEcho)

	return r
}

// NewGinEngine mounts the same routes as NewChiRouter on a gin engine.
func NewGinEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", gin.WrapF(s.ServePage))
	r.Any("/echo", gin.WrapF(s.ServeEcho))

	return r
}

// NewRouter picks the router by name: "chi" (default) or "gin".
func NewRouter(kind string, s *Server) (http.Handler, error) {
	switch kind {
	case "", "chi":
		return NewChiRouter(s), nil
	case "gin":
		return NewGinEngine(s), nil
	default:
		return nil, fmt.Errorf("demo: unknown router %q", kind)
	}
}
