package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/aukdevgh/project-backend/internal/token"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// Cookie names for the bearer token pair
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// AuthMiddleware is the token refresh gate. Every request ends in exactly
// one of two states: authenticated with resolved claims on the context, or
// rejected before any downstream handler runs.
//
// A valid access token authenticates directly. When the access token is
// absent, invalid, or expired, a valid refresh token transparently mints a
// replacement access token from the refresh token's own claims and the
// request proceeds; the renewed credential is re-emitted as a cookie with
// the same TTL a login would set. A missing refresh token rejects with 401,
// a present but invalid one with 403.
func AuthMiddleware(access token.Verifier, refresh token.Verifier, issuer token.Issuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken := cookieValue(r, AccessTokenCookie)
			refreshToken := cookieValue(r, RefreshTokenCookie)

			if accessToken == "" && refreshToken == "" {
				logger.Debug("No credentials on request")
				respondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if accessToken != "" {
				claims, err := access.Verify(accessToken)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
					return
				}
				logger.Debug("Access token rejected, trying refresh token", zap.Error(err))
			}

			if refreshToken == "" {
				respondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			// Claims for the renewed credential come from the refresh token
			// itself, never from client-supplied input.
			claims, err := refresh.Verify(refreshToken)
			if err != nil {
				logger.Debug("Refresh token rejected", zap.Error(err))
				respondWithError(w, http.StatusForbidden, "forbidden")
				return
			}

			renewed, err := issuer.Issue(claims)
			if err != nil {
				logger.Error("Failed to issue renewed access token", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			SetTokenCookie(w, AccessTokenCookie, renewed, issuer.TTL())
			logger.Debug("Access token renewed", zap.String("user_id", claims.UserID))

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// SetTokenCookie emits a token credential as an httpOnly cookie.
func SetTokenCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearTokenCookie expires a token cookie.
func ClearTokenCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func withClaims(ctx context.Context, claims token.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	return context.WithValue(ctx, UserEmailKey, claims.Email)
}

// GetUserID extracts the authenticated user id from the request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUserEmail extracts the authenticated user email from the request context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
