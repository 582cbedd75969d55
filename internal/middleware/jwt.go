package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
)

const identityKey = "identity"

func parseToken(secret, tokenStr string) (model.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return model.Identity{}, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, fmt.Errorf("invalid claims")
	}

	ident := model.Identity{}
	if sub, ok := claims["sub"].(string); ok {
		ident.ID = sub
	}
	if ident.ID == "" {
		return model.Identity{}, fmt.Errorf("missing subject")
	}

	if rawRoles, exists := claims["roles"]; exists {
		switch roles := rawRoles.(type) {
		case []interface{}:
			for _, r := range roles {
				if s, ok := r.(string); ok {
					ident.Roles = append(ident.Roles, s)
				}
			}
		case string:
			ident.Roles = append(ident.Roles, roles)
		}
	}
	return ident, nil
}

// Auth requires a valid bearer token and puts the caller's identity on
// the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No bearer token"})
			return
		}
		ident, err := parseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// OptionalAuth parses a bearer token when one is present but lets
// anonymous callers through, for routes whose response merely varies by
// identity.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if ident, err := parseToken(secret, strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Set(identityKey, ident)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route group on a role claim, e.g. ADMIN for the
// reviewer surface.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No bearer token"})
			return
		}
		for _, r := range ident.Roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": role + " access only"})
	}
}

func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return model.Identity{}, false
	}
	ident, ok := v.(model.Identity)
	return ident, ok
}
