package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const CtxClaimsKey = "admin_claims"

// AuthMiddleware accepts either a platform-minted bearer JWT or, when a
// service-key hash is configured, an X-Admin-Key header (bcrypt-verified).
// The service key path exists for one-shot jobs hitting admin endpoints.
func AuthMiddleware(tokens TokenService, keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash != "" {
			if key := c.GetHeader("X-Admin-Key"); key != "" {
				if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err == nil {
					c.Next()
					return
				}
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid service key"})
				c.Abort()
				return
			}
		}

		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
