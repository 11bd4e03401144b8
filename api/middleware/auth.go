package middleware

import (
	"context"
	"net/http"
	"tehnika_server/lib"
	"tehnika_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing user data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

// AdminAuthMiddleware protects the back-office routes. The token comes from
// the HttpOnly access cookie; revoked or non-admin tokens are rejected.
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.authService.GetAccessTokenSecret())
		if err != nil {
			mw.logger.Warn("Failed to extract claims from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
			return
		}

		if time.Now().After(claims.Exp) {
			gecho.Unauthorized(w, gecho.WithMessage("Access token expired"), gecho.Send())
			return
		}

		revoked, err := mw.authService.IsTokenRevoked(claims)
		if err != nil {
			mw.logger.Warn("Failed to check token revocation", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		} else if revoked {
			gecho.Unauthorized(w, gecho.WithMessage("Access token revoked"), gecho.Send())
			return
		}

		if claims.Role != "admin" {
			mw.logger.Warn("Non-admin user attempted to access admin route", gecho.Field("user_id", claims.Sub), gecho.Field("role", claims.Role))
			gecho.Forbidden(w, gecho.WithMessage("Admin access required"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}
