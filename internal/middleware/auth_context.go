package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const sessionCookieName = "token"

// AuthContext:
// - Si issuer != nil => busca el token (cookie "token", o Authorization Bearer)
//   y solo setea claims cuando Verify retornó sin error. Nunca se propaga
//   identidad parcialmente verificada.
// - Si issuer == nil => modo dev: header X-Debug-User-Email setea claims.
// - Si no hay claims, el request sigue igual; los guards/handlers deciden 401/403.
func AuthContext(issuer auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Dev mode: permitir inyectar identidad sin issuer
			if issuer == nil {
				if email := users.NormalizeEmail(r.Header.Get("X-Debug-User-Email")); email != "" {
					claims := auth.Claims{Email: email}
					ctx := context.WithValue(r.Context(), claimsKey, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := issuer.Verify(r.Context(), token)
			if err != nil {
				// Token inválido/expirado: sigue sin identidad; el guard corta con 401.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// sessionToken busca el token primero en la cookie de sesión y después
// en Authorization: Bearer (clientes no-browser).
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
