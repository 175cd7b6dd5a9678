package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"menu-service/internal/scope"
	"menu-service/pkg/jwtutil"
	"menu-service/pkg/logger"
	"menu-service/prometheus"
)

const callerContextKey = "caller"

// AuthMiddleware validates the JWT token and stores the caller identity in
// the request context. Requests without a valid token are rejected.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		caller, err := callerFromHeader(authHeader)
		if err != nil {
			log.Warn("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set(callerContextKey, caller)
		log.Info("Request authenticated",
			zap.Uint("user_id", caller.UserID),
			zap.Bool("is_staff", caller.IsStaff),
			zap.Bool("is_superuser", caller.IsSuperuser))

		return next(c)
	}
}

// OptionalAuthMiddleware parses the JWT token when one is present but lets
// anonymous requests through. Used on the public menu routes; whether an
// anonymous read is ultimately allowed is the authorization gate's call.
func OptionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		caller, err := callerFromHeader(authHeader)
		if err != nil {
			logger.FromContext(c).Warn("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set(callerContextKey, caller)
		return next(c)
	}
}

// CallerFromContext retrieves the caller identity set by the auth
// middleware. Returns the anonymous caller when none was set.
func CallerFromContext(c echo.Context) scope.Caller {
	caller, ok := c.Get(callerContextKey).(scope.Caller)
	if !ok {
		return scope.Caller{}
	}
	return caller
}

func callerFromHeader(authHeader string) (scope.Caller, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return scope.Caller{}, errors.New("invalid authorization format, expected Bearer token")
	}

	claims, err := jwtutil.ValidateToken(parts[1])
	if err != nil {
		return scope.Caller{}, err
	}

	return scope.Caller{
		UserID:      claims.UserID,
		Email:       claims.Email,
		IsStaff:     claims.IsStaff,
		IsSuperuser: claims.IsSuperuser,
	}, nil
}
