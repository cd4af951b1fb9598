package restapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/sailhq/sailpost/pkg/respbuilder"
)

type authUserKey struct{}

// ActorClaims is the token payload issued to staff accounts.
type ActorClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ActorFromContext returns the authenticated actor, or an empty claim set
// when the route is unauthenticated.
func ActorFromContext(ctx context.Context) ActorClaims {
	claims, _ := ctx.Value(authUserKey{}).(ActorClaims)
	return claims
}

// bearerAuth guards a route group with an HS256 bearer token check.
func bearerAuth(secret string, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := strings.TrimSpace(r.Header.Get("Authorization"))
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			err := fmt.Errorf("missing bearer token")
			resp := respbuilder.Error(ctx, respbuilder.ErrUnauthorized, err)
			respbuilder.WriteJSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		claims := ActorClaims{}
		parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
			}

			return []byte(secret), nil
		})

		if err != nil || !parsed.Valid {
			if err == nil {
				err = fmt.Errorf("invalid token")
			}

			resp := respbuilder.Error(ctx, respbuilder.ErrUnauthorized, err)
			respbuilder.WriteJSON(http.StatusUnauthorized, w, r, resp)
			return
		}

		ctx = context.WithValue(ctx, authUserKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
