package auth

import "context"

// TokenIssuer emite y verifica tokens de sesión.
// Verify debe completar antes de que cualquier handler lea claims:
// el middleware solo propaga claims cuando Verify retornó sin error.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
	Verify(ctx context.Context, token string) (Claims, error)
}
