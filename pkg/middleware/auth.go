package middleware

import (
	"context"
	"net/http"
	"strings"

	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

// TokenParser is satisfied by *utils.TokenManager
type TokenParser interface {
	Parse(tokenString, tokenType string) (*utils.Claims, error)
}

// PermissionChecker answers whether a user holds a permission codename
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID int64, codename string) (bool, error)
}

// Auth validates the Bearer access token and puts the user on the context
func Auth(tokens TokenParser, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			// 2. Verify signature, expiry and type
			claims, err := tokens.Parse(strings.TrimSpace(token), utils.TokenTypeAccess)
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission must run after Auth
func RequirePermission(checker PermissionChecker, codename string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			allowed, err := checker.HasPermission(r.Context(), userID, codename)
			if err != nil {
				logger.Error("Permission check failed",
					zap.Error(err), zap.Int64("user_id", userID), zap.String("codename", codename))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if !allowed {
				logger.Warn("Permission denied",
					zap.Int64("user_id", userID),
					zap.String("codename", codename),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
