package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yoockh/mora/internal/utils"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

type JWTConfig struct {
	Secret   string
	Issuer   string // optional
	Audience string // optional
}

type supabaseClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
		Code:    utils.CodeUnauthorized,
		Message: msg,
	})
}

// JWTAuth validates HS256 Supabase access tokens and stores the subject as
// user_id. Only mounted when a secret is configured.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	secret := []byte(cfg.Secret)

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if raw == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims := &supabaseClaims{}
		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}
		if cfg.Audience != "" {
			opts = append(opts, jwt.WithAudience(cfg.Audience))
		}

		tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, opts...)
		if err != nil || tok == nil || !tok.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		if claims.Subject == "" {
			abortUnauthorized(c, "missing subject")
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}
