package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IDParamsMiddleware rejects requests whose :id or :*_id path parameters are
// not UUIDs. Such ids can never match a row, so they are answered with 404.
func IDParamsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range c.Params {
			if p.Key != "id" && !strings.HasSuffix(p.Key, "_id") {
				continue
			}
			if _, err := uuid.Parse(p.Value); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s %q: not found", p.Key, p.Value)})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
