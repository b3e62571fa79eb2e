package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/srikumaragency/b-admin-prod-03/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey is the gin context key holding *JWTClaims after JWTAuth.
const ClaimsKey = "claims"

// TokenTypeRefresh marks refresh tokens; anything else is an access token.
const TokenTypeRefresh = "refresh"

var (
	errNoBearer     = errors.New("missing bearer token")
	errRefreshToken = errors.New("refresh token used as access token")
)

// JWTClaims are the custom claims embedded in every admin token.
type JWTClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Rol     string `json:"rol"`
	Typ     string `json:"typ"`
	jwt.RegisteredClaims
}

// ParseAccessToken verifies an HS256 token and rejects refresh tokens.
func ParseAccessToken(secret, raw string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Typ == TokenTypeRefresh {
		return nil, errRefreshToken
	}
	return claims, nil
}

func bearer(c *gin.Context) (string, error) {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errNoBearer
	}
	return token, nil
}

// JWTAuth guards the admin routes.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearer(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}
		claims, err := ParseAccessToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose token role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		for _, r := range roles {
			if claims != nil && claims.Rol == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
	}
}

func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
