package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fitsocial/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
	})
	return router
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("user-9", "coach")
	foreign, _ := jwt.NewService("other-secret").GenerateToken("user-9", "coach")

	router := setupTestRouter(AuthMiddleware(jwtService))

	cases := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, `"user_id":"user-9"`},
		{"no header", "", http.StatusUnauthorized, "missing or malformed"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "missing or malformed"},
		{"bare token", token, http.StatusUnauthorized, "missing or malformed"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "missing or malformed"},
		{"foreign token", "Bearer " + foreign, http.StatusUnauthorized, "invalid token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(router, tc.header)
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestAuthMiddleware_SetsRole(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("user-9", "coach")

	w := get(setupTestRouter(AuthMiddleware(jwtService)), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"coach"`)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("user-42", "member")

	router := setupTestRouter(OptionalAuthMiddleware(jwtService))

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"anonymous", "", `"user_id":""`},
		{"valid token", "Bearer " + token, `"user_id":"user-42"`},
		{"invalid token", "Bearer nope", `"user_id":""`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(router, tc.header)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}
}
