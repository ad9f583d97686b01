package middleware

import (
	stdcontext "context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Ramsey-B/babyshop/pkg/context"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

type UserClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// TokenVerifier verifies a raw bearer token and returns its claims
type TokenVerifier func(ctx stdcontext.Context, raw string) (*UserClaims, error)

// NewOIDCVerifier discovers issuer and verifies ID tokens issued for clientID
func NewOIDCVerifier(ctx stdcontext.Context, issuer, clientID string) (TokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	return func(ctx stdcontext.Context, raw string) (*UserClaims, error) {
		idToken, err := verifier.Verify(ctx, raw)
		if err != nil {
			return nil, err
		}

		var claims UserClaims
		if err := idToken.Claims(&claims); err != nil {
			return nil, fmt.Errorf("cannot parse claims: %w", err)
		}
		return &claims, nil
	}, nil
}

func Authentication(logger ectologger.Logger, verify TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx, span := tracing.StartSpan(ctx, "middleware.Authentication")
			defer span.End()

			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				logger.WithContext(ctx).Warn("request is missing bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer")
			}

			raw := strings.TrimPrefix(auth, "Bearer ")
			verifyCtx, cancel := stdcontext.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			claims, err := verify(verifyCtx, raw)
			if err != nil {
				logger.WithContext(ctx).WithError(err).Warn("token is invalid")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx = context.SetUserID(ctx, claims.Sub)
			ctx = context.SetUserEmail(ctx, claims.Email)

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// PasswordChecker returns the admin matching the credentials, or nil
type PasswordChecker interface {
	CheckPassword(ctx stdcontext.Context, identifiant, motDePasse string) (*models.Admin, error)
}

// BasicAuth authenticates admins with their identifiant and password. It is
// used when no OIDC issuer is configured.
func BasicAuth(logger ectologger.Logger, admins PasswordChecker) echo.MiddlewareFunc {
	return echomiddleware.BasicAuthWithConfig(echomiddleware.BasicAuthConfig{
		Realm: "babyshop",
		Validator: func(username, password string, c echo.Context) (bool, error) {
			ctx := c.Request().Context()

			admin, err := admins.CheckPassword(ctx, username, password)
			if err != nil {
				logger.WithContext(ctx).WithError(err).Error("failed to check admin credentials")
				return false, err
			}
			if admin == nil {
				logger.WithContext(ctx).WithField("identifiant", username).Warn("invalid admin credentials")
				return false, nil
			}

			ctx = context.SetUserID(ctx, strconv.FormatInt(*admin.ID, 10))
			c.SetRequest(c.Request().WithContext(ctx))
			return true, nil
		},
	})
}
