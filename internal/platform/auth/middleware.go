package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	StaffIDKey    contextKey = "staff_id"
	RoleKey       contextKey = "staff_role"
	DepartmentKey contextKey = "staff_department"
)

// Claims are the token claims for hospital staff. The subject is the staff
// id; role and department drive authorization decisions downstream.
type Claims struct {
	jwt.RegisteredClaims
	Role       string `json:"role"`
	Department string `json:"department"`
}

type JWTConfig struct {
	Issuer   string
	Audience string
	JWKSURL  string
	// SigningKey enables HMAC verification for development and testing.
	SigningKey []byte
}

// JWTMiddleware validates a bearer token and places the actor's identity,
// role and department into the request context.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			tokenStr := parts[1]
			claims := &Claims{}

			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"RS256", "HS256"}),
			}
			if cfg.Issuer != "" {
				opts = append(opts, jwt.WithIssuer(cfg.Issuer))
			}
			if cfg.Audience != "" {
				opts = append(opts, jwt.WithAudience(cfg.Audience))
			}

			var token *jwt.Token
			var err error

			if len(cfg.SigningKey) > 0 {
				token, err = jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
					return cfg.SigningKey, nil
				}, opts...)
			} else {
				token, err = jwt.ParseWithClaims(tokenStr, claims, jwksKeyFunc(cfg.JWKSURL), opts...)
			}

			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, StaffIDKey, claims.Subject)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			ctx = context.WithValue(ctx, DepartmentKey, claims.Department)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// DevStaffID is the staff id dev-mode requests run as when no X-Staff-ID
// header is sent. It is a fixed UUID so handlers that parse the actor's id
// work without extra setup.
const DevStaffID = "00000000-0000-0000-0000-000000000001"

// DevAuthMiddleware is a permissive middleware for development. Requests
// without an Authorization header run as a default admin; the identity can be
// overridden with X-Staff-ID / X-Staff-Role / X-Staff-Department headers so
// multi-actor flows can be exercised locally.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			staffID := c.Request().Header.Get("X-Staff-ID")
			if staffID == "" {
				staffID = DevStaffID
			}
			role := c.Request().Header.Get("X-Staff-Role")
			if role == "" {
				role = "admin"
			}
			department := c.Request().Header.Get("X-Staff-Department")

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, StaffIDKey, staffID)
			ctx = context.WithValue(ctx, RoleKey, role)
			ctx = context.WithValue(ctx, DepartmentKey, department)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func StaffIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(StaffIDKey).(string)
	return id
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

func DepartmentFromContext(ctx context.Context) string {
	dept, _ := ctx.Value(DepartmentKey).(string)
	return dept
}
