package adoptions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminChecker) {
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Post("/adoption-request", createRequestHandler(svc))

		// chi exige el mismo nombre de wildcard en la misma posición:
		// en el GET el valor es el email del owner, en el PUT el id del request.
		ar.Get("/adoption-requests/{id}", listByOwnerHandler(svc))

		// owner de la mascota o admin
		ar.Put("/adoption-requests/{id}/accept", resolveRequestHandler(svc, admins))
	})
}

type createRequest struct {
	PetID         string `json:"pet_id"`
	PetName       string `json:"pet_name"`
	RequesterName string `json:"requester_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type resolveRequest struct {
	// Opcional; default "accepted". Valores: accepted | rejected.
	Status string `json:"status"`
}

type requestResponse struct {
	ID             string    `json:"id"`
	PetID          string    `json:"pet_id"`
	Owner          string    `json:"owner"`
	PetName        string    `json:"pet_name"`
	RequesterName  string    `json:"requester_name"`
	RequesterEmail string    `json:"requester_email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func createRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// El email del solicitante sale del token, nunca del body.
		created, err := svc.Create(r.Context(), CreateInput{
			PetID:          req.PetID,
			PetName:        req.PetName,
			RequesterName:  req.RequesterName,
			RequesterEmail: claims.Email,
			Phone:          req.Phone,
			Address:        req.Address,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(created))
	}
}

func listByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		owner := chi.URLParam(r, "id")
		if !middleware.IsOwner(claims.Email, owner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByOwner(r.Context(), owner)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]requestResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toRequestResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// resolveRequestHandler aplica permisos: owner de la mascota o admin.
func resolveRequestHandler(svc *Service, admins middleware.AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		requestID := chi.URLParam(r, "id")

		current, err := svc.GetByID(r.Context(), requestID)
		if err != nil {
			http.Error(w, "adoption request not found", http.StatusNotFound)
			return
		}

		if !middleware.IsOwner(claims.Email, current.Owner) {
			isAdmin, err := admins.IsAdmin(r.Context(), claims.Email)
			if err != nil || !isAdmin {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		// Body opcional: sin body => accepted.
		newStatus := StatusAccepted
		var req resolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Status != "" {
			newStatus = Status(req.Status)
		}

		resolved, err := svc.Resolve(r.Context(), requestID, newStatus)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "status must be accepted or rejected", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "adoption request not found", http.StatusNotFound)
			case ErrBadState:
				http.Error(w, "request already resolved or pet already adopted", http.StatusBadRequest)
			default:
				// Incluye fallas parciales del workflow: nunca se reporta
				// éxito si los dos writes no quedaron visibles.
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(resolved))
	}
}

func toRequestResponse(a AdoptionRequest) requestResponse {
	return requestResponse{
		ID:             a.ID,
		PetID:          a.PetID,
		Owner:          a.Owner,
		PetName:        a.PetName,
		RequesterName:  a.RequesterName,
		RequesterEmail: a.RequesterEmail,
		Phone:          a.Phone,
		Address:        a.Address,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
