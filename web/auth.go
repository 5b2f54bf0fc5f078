package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/render"
)

type contextKey string

const callerEmailKey contextKey = "callerEmail"

// Claims identify a manager by the email in the league directory.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type tokenAuth struct {
	secret []byte
	clock  clock.Clock
}

func newTokenAuth(secret []byte, clock clock.Clock) *tokenAuth {
	return &tokenAuth{secret: secret, clock: clock}
}

// NewToken signs a token for the manager with the given email.
func NewToken(secret []byte, email string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (a *tokenAuth) validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, errors.New("token has no email")
	}
	return claims, nil
}

// requireCaller rejects requests without a valid bearer token and puts the
// caller's email on the request context.
func (a *tokenAuth) requireCaller(render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				render.JSON(w, http.StatusUnauthorized, errorBody("authorization header required"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				render.JSON(w, http.StatusUnauthorized, errorBody("invalid authorization header"))
				return
			}

			claims, err := a.validate(parts[1])
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("token validation failed")
				render.JSON(w, http.StatusUnauthorized, errorBody("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), callerEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(callerEmailKey).(string)
	return email, ok
}
