package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-adoption/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
)

const defaultTTL = 6 * time.Hour

// Issuer implementa auth.TokenIssuer con HS256.
// El secret viene de config (JWT_SECRET); no hay rotación de llaves por ahora.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Options struct {
	Secret string
	TTL    time.Duration // 0 => defaultTTL
}

func New(opts Options) (*Issuer, error) {
	if strings.TrimSpace(opts.Secret) == "" {
		return nil, errors.New("jwtauth: secret required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{
		secret: []byte(opts.Secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

type sessionClaims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (i *Issuer) Issue(ctx context.Context, c auth.Claims) (string, error) {
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if email == "" {
		return "", ErrInvalidInput
	}

	now := i.now()
	claims := sessionClaims{
		Name: strings.TrimSpace(c.Name),
		Role: string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (i *Issuer) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		// Solo HS256; cualquier otro alg se rechaza.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	email := strings.ToLower(strings.TrimSpace(claims.Subject))
	if email == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		Email: email,
		Name:  claims.Name,
		Role:  auth.Role(claims.Role),
	}, nil
}
