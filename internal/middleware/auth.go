package middleware

import (
	"net/http"
	"strings"

	"github.com/alimarchal/maharat-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries any of roles.
func (c *JWTClaims) HasRole(roles ...string) bool {
	for _, have := range c.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}
		if _, err := uuid.Parse(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose token carries none of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetClaims returns the typed claims set by JWTAuth, or nil.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}

// ActorID is the authenticated user's id, or uuid.Nil on public routes.
func ActorID(c *gin.Context) uuid.UUID {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, _ := uuid.Parse(claims.UserID)
	return id
}
