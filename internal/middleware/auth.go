package middleware

import (
	"net/http"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/jwt"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxKind   = "principal_kind"
	ctxRole   = "role"
	ctxEmail  = "email"
)

// JWTAuth validates the bearer token and stores the caller identity in the
// gin context. Websocket upgrades may pass the token as ?access_token= since
// browsers cannot set headers on them.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, code, msg := bearerToken(c)
		if code != "" {
			response.Error(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		kind := domain.PrincipalKind(claims.Kind)
		if claims.UserID <= 0 || !kind.Valid() {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxKind, string(kind))
		c.Set(ctxRole, claims.Role)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (token, code, message string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if isWebsocketUpgrade(c) {
			if t := c.Query("access_token"); t != "" {
				return t, "", ""
			}
		}
		return "", "AUTH_HEADER_MISSING", "Authorization header is required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
	}
	return parts[1], "", ""
}

func isWebsocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

// ActorFrom returns the caller set by JWTAuth.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	id := c.GetInt64(ctxUserID)
	kind := domain.PrincipalKind(c.GetString(ctxKind))
	if id <= 0 || !kind.Valid() {
		return domain.Actor{}, false
	}
	return domain.Actor{
		ID:   id,
		Kind: kind,
		Role: domain.UserRole(c.GetString(ctxRole)),
	}, true
}

// MustActor is ActorFrom for handlers mounted behind JWTAuth. It writes a 401
// and returns false when no caller is present.
func MustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		c.Abort()
	}
	return actor, ok
}
