package middleware

import (
	"net/http"
	"strings"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every session token.
type JWTClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTAuth validates the session token on every admin route. The token is
// read from the session cookie; an Authorization Bearer header is accepted
// for API clients.
func JWTAuth(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenDe(c, cookieName)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid || claims.AdminID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Sesion invalida o expirada"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func tokenDe(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
// It returns nil outside JWTAuth.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
