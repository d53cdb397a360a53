package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterPublic(r *gin.RouterGroup) {
	r.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
}

func (pingController) RegisterProtected(r *gin.RouterGroup) {
	r.POST("/closed", func(c *gin.Context) { c.Status(http.StatusOK) })
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }

	serve := func(r *Router, method, path string) int {
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w.Code
	}

	t.Run("middleware guards only protected routes", func(t *testing.T) {
		r := NewRouter(Config{BaseURL: "/api", Controllers: []i.Controller{pingController{}}, AuthorizationMiddleware: deny})
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/open"))
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/api/v1/closed"))
	})

	t.Run("no middleware leaves protected routes open", func(t *testing.T) {
		r := NewRouter(Config{BaseURL: "/api", Controllers: []i.Controller{pingController{}}})
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/v1/closed"))
	})
}
