package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// ActorKey is the echo context key holding the authenticated domain.Actor.
const ActorKey = "actor"

// Auth validates the JWT and injects the actor it describes into context.
//
// The token is read from the Authorization header. Browsers cannot set
// headers on a websocket handshake, so a "token" query parameter is
// accepted as a fallback.
//
// A valid signature is not enough: sessions must confirm the account is
// still active, so deactivating an account revokes its outstanding tokens.
func Auth(jwtSecret string, sessions ports.SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			actor, ok := actorFromClaims(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !sessions.Active(c.Request().Context(), actor) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ActorKey, actor)
			c.Set("role", string(actor.Role))
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if q := c.QueryParam("token"); q != "" {
			return q, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// actorFromClaims rebuilds the actor. A client token must carry a
// client_id that matches its subject.
func actorFromClaims(claims jwt.MapClaims) (domain.Actor, bool) {
	str := func(k string) string {
		s, _ := claims[k].(string)
		return s
	}

	actor := domain.Actor{
		Role:  domain.Role(str("role")),
		ID:    str("sub"),
		Name:  str("name"),
		Email: str("email"),
	}
	if !actor.Role.Valid() || actor.ID == "" {
		return domain.Actor{}, false
	}
	if actor.IsClient() && str("client_id") != actor.ID {
		return domain.Actor{}, false
	}
	return actor, true
}
