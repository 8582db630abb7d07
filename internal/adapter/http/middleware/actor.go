package middleware

import (
	"log"
	"strings"

	"montage_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// OptionalActor parses a staff JWT if present and records its user_id as the
// acting user of the request. It never rejects the request: without a valid
// token the actor stays "system".
func OptionalActor(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || token == nil || !token.Valid {
			log.Printf("[auth][middleware] ignoring invalid token err=%v", err)
			c.Next()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}
		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.Next()
			return
		}
		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(usecase.WithActor(c.Request.Context(), userID))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
