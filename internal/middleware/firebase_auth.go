package middleware

import (
	"context"
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/archnet-io/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UIDResolver maps a verified Firebase UID to local claims. Wired with a
// closure over the user repository so the middleware stays storage-free.
type UIDResolver func(ctx context.Context, uid string) (*models.JwtCustomClaims, error)

// FirebaseAuthMiddleware creates an Echo middleware that verifies Firebase ID
// tokens and resolves them to the same claims shape the JWT middleware sets,
// so handlers never care which auth mode is active.
func FirebaseAuthMiddleware(authClient *auth.Client, resolve UIDResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			// Verify the ID token
			token, err := authClient.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			claims, err := resolve(c.Request().Context(), token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found")
			}

			c.Set(ContextKeyClaims, claims)
			c.Set("firebaseUID", token.UID)

			return next(c)
		}
	}
}
