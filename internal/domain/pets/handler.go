package pets

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminChecker) {
	// Público
	r.Get("/available-pets", listAvailableHandler(svc))
	r.Get("/pet/{petID}", getPetHandler(svc))

	// Autenticado
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Post("/pet", createPetHandler(svc))

		// chi exige el mismo nombre de wildcard en la misma posición,
		// así que /pets/{id} se comparte: en el GET el valor es el email
		// del owner, en PUT/DELETE es el id de la mascota.
		ar.Get("/pets/{id}", listMyPetsHandler(svc))

		// owner o admin
		ar.Patch("/pets/adopt/{id}", adoptPetHandler(svc, admins))
		ar.Put("/pets/{id}", updatePetHandler(svc, admins))
		ar.Delete("/pets/{id}", deletePetHandler(svc, admins))
	})
}

type createPetRequest struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	Image            string `json:"image"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name             *string `json:"name"`
	Age              *int    `json:"age"`
	Category         *string `json:"category"`
	Location         *string `json:"location"`
	Image            *string `json:"image"`
	ShortDescription *string `json:"short_description"`
	LongDescription  *string `json:"long_description"`
}

type petResponse struct {
	ID               string    `json:"id"`
	Owner            string    `json:"owner"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	Category         string    `json:"category"`
	Location         string    `json:"location"`
	Image            string    `json:"image"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	Adopted          bool      `json:"adopted"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createPetRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// El owner sale del token, nunca del body.
		p, err := svc.Create(r.Context(), claims.Email, CreateInput{
			Name:             req.Name,
			Age:              req.Age,
			Category:         req.Category,
			Location:         req.Location,
			Image:            req.Image,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
		})
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listAvailableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		email := chi.URLParam(r, "id")
		if !middleware.IsOwner(claims.Email, email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByOwner(r.Context(), email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// adoptPetHandler aplica permisos: owner de la mascota o admin.
func adoptPetHandler(svc *Service, admins middleware.AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "id")

		if !authorizeOwnerOrAdmin(w, r, svc, admins, petID) {
			return
		}

		if err := svc.MarkAdopted(r.Context(), petID); err != nil {
			if err == ErrNotFound {
				http.Error(w, "pet not found or already adopted", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "pet marked as adopted",
		})
	}
}

func updatePetHandler(svc *Service, admins middleware.AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "id")

		if !authorizeOwnerOrAdmin(w, r, svc, admins, petID) {
			return
		}

		var req updatePetRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), petID, UpdateInput{
			Name:             req.Name,
			Age:              req.Age,
			Category:         req.Category,
			Location:         req.Location,
			Image:            req.Image,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
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

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service, admins middleware.AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "id")

		if !authorizeOwnerOrAdmin(w, r, svc, admins, petID) {
			return
		}

		if err := svc.Delete(r.Context(), petID); err != nil {
			if err == ErrNotFound {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"message": "pet deleted"})
	}
}

// authorizeOwnerOrAdmin carga la mascota y valida owner (o admin bypass).
// Escribe la respuesta de error y devuelve false si no pasa.
func authorizeOwnerOrAdmin(w http.ResponseWriter, r *http.Request, svc *Service, admins middleware.AdminChecker, petID string) bool {
	claims, _ := middleware.GetClaims(r.Context())

	owner, err := svc.OwnerOf(r.Context(), petID)
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return false
	}

	if middleware.IsOwner(claims.Email, owner) {
		return true
	}

	isAdmin, err := admins.IsAdmin(r.Context(), claims.Email)
	if err != nil || !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:               p.ID,
		Owner:            p.Owner,
		Name:             p.Name,
		Age:              p.Age,
		Category:         p.Category,
		Location:         p.Location,
		Image:            p.Image,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Adopted:          p.Adopted,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
