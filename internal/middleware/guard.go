package middleware

import (
	"context"
	"net/http"
	"strings"
)

// AdminChecker lo implementa users.Service. Interface chica acá para no
// acoplar el guard al módulo de users.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAuth corta con 401 si el request no trae identidad verificada.
// La verificación ya ocurrió (sincrónicamente) en AuthContext.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Email) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin exige identidad verificada + rol admin releído de la base.
// 401 sin identidad, 403 si el user no existe o no es admin.
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.Email) == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			isAdmin, err := checker.IsAdmin(r.Context(), claims.Email)
			if err != nil || !isAdmin {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsOwner aplica la política de ownership: el email autenticado debe
// coincidir con el owner del recurso (comparación case-insensitive).
func IsOwner(claimsEmail, resourceEmail string) bool {
	a := strings.ToLower(strings.TrimSpace(claimsEmail))
	b := strings.ToLower(strings.TrimSpace(resourceEmail))
	return a != "" && a == b
}
