package users

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/ports/auth"
)

const sessionCookieName = "token"

// CookieOptions controla los atributos de la cookie de sesión.
// Secure=true implica SameSite=None (deploy cross-site sobre HTTPS).
type CookieOptions struct {
	Secure bool
}

func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, cookies CookieOptions, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/register", registerHandler(svc))
	r.Post("/jwt", issueTokenHandler(svc, issuer, cookies))
	r.Post("/logout", logoutHandler(cookies))

	// Admin-only
	r.Group(func(ar chi.Router) {
		ar.Use(requireAdmin)
		ar.Get("/users", listUsersHandler(svc))
		ar.Patch("/users/make-admin/{userID}", makeAdminHandler(svc))
	})
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:  req.Name,
			Email: req.Email,
			Image: req.Image,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "email is required", http.StatusBadRequest)
			case ErrDuplicate:
				http.Error(w, "email already registered", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

type issueTokenRequest struct {
	Email string `json:"email"`
}

func issueTokenHandler(svc *Service, issuer auth.TokenIssuer, cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if issuer == nil {
			// modo dev sin issuer: la identidad entra por header, no por /jwt
			http.Error(w, "token issuing not configured", http.StatusServiceUnavailable)
			return
		}

		var req issueTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if NormalizeEmail(req.Email) == "" {
			http.Error(w, "email is required", http.StatusBadRequest)
			return
		}

		u, err := svc.GetByEmail(r.Context(), req.Email)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		token, err := issuer.Issue(r.Context(), auth.Claims{
			Email: u.Email,
			Name:  u.Name,
			Role:  auth.Role(u.Role),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, sessionCookie(token, cookies))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   token,
		})
	}
}

func logoutHandler(cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := sessionCookie("", cookies)
		c.MaxAge = -1
		http.SetCookie(w, c)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func makeAdminHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		u, err := svc.MakeAdmin(r.Context(), userID)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "user id is required", http.StatusBadRequest)
			case ErrAlreadyAdmin:
				http.Error(w, "user is already admin", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "user not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func sessionCookie(token string, opts CookieOptions) *http.Cookie {
	c := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((6 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
	if opts.Secure {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
