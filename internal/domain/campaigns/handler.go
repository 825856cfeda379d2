package campaigns

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminChecker) {
	// Público
	r.Get("/donation-campaigns", listCampaignsHandler(svc))
	r.Get("/donation-campaign-details/{campaignID}", campaignDetailsHandler(svc))

	// Autenticado
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Post("/donation-campaigns", createCampaignHandler(svc))

		// chi exige el mismo nombre de wildcard en la misma posición:
		// en el GET el valor es el email del owner, en PUT/PATCH el id
		// de la campaña.
		ar.Get("/donation-campaigns/{id}", listMyCampaignsHandler(svc))

		// owner o admin
		ar.Put("/donation-campaigns/{id}", updateCampaignHandler(svc, admins))
		ar.Patch("/donation-campaigns/{id}/toggle-pause", togglePauseHandler(svc, admins))

		// flujos de acumulación (pago / refund)
		ar.Put("/update-donation-amount", accrueHandler(svc))
		ar.Put("/revert-donation-amount", revertHandler(svc))
	})
}

type createCampaignRequest struct {
	PetName          string  `json:"pet_name"`
	Image            string  `json:"image"`
	MaxDonation      float64 `json:"max_donation"`
	LastDate         string  `json:"last_date"` // YYYY-MM-DD
	ShortDescription string  `json:"short_description"`
	LongDescription  string  `json:"long_description"`
}

type updateCampaignRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	PetName          *string  `json:"pet_name"`
	Image            *string  `json:"image"`
	MaxDonation      *float64 `json:"max_donation"`
	LastDate         *string  `json:"last_date"` // YYYY-MM-DD
	ShortDescription *string  `json:"short_description"`
	LongDescription  *string  `json:"long_description"`
}

type amountRequest struct {
	CampaignID string  `json:"campaign_id"`
	Amount     float64 `json:"amount"`
}

type campaignResponse struct {
	ID               string    `json:"id"`
	Owner            string    `json:"owner"`
	PetName          string    `json:"pet_name"`
	Image            string    `json:"image"`
	MaxDonation      float64   `json:"max_donation"`
	DonatedAmount    float64   `json:"donated_amount"`
	LastDate         string    `json:"last_date"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	IsPaused         bool      `json:"is_paused"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type listCampaignsResponse struct {
	Success    bool               `json:"success"`
	Campaigns  []campaignResponse `json:"campaigns"`
	Pagination Pagination         `json:"pagination"`
}

func createCampaignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createCampaignRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		lastDate, err := parseDate(req.LastDate)
		if err != nil {
			http.Error(w, "last_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), claims.Email, CreateInput{
			PetName:          req.PetName,
			Image:            req.Image,
			MaxDonation:      req.MaxDonation,
			LastDate:         lastDate,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
		})
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, "missing required fields", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toCampaignResponse(c))
	}
}

func listCampaignsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", DefaultPageLimit)

		items, pagination, err := svc.List(r.Context(), page, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]campaignResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCampaignResponse(c))
		}

		writeJSON(w, http.StatusOK, listCampaignsResponse{
			Success:    true,
			Campaigns:  out,
			Pagination: pagination,
		})
	}
}

func campaignDetailsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "campaignID"))
		if err != nil {
			http.Error(w, "campaign not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCampaignResponse(c))
	}
}

func listMyCampaignsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]campaignResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCampaignResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateCampaignHandler(svc *Service, admins middleware.AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := chi.URLParam(r, "id")

		if !authorizeOwnerOrAdmin(w, r, svc, admins, campaignID) {
			return
		}

		var req updateCampaignRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var lastDate *time.Time
		if req.LastDate != nil {
			t, err := parseDate(*req.LastDate)
			if err != nil {
				http.Error(w, "last_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			lastDate = &t
		}

		updated, err := svc.Update(r.Context(), campaignID, UpdateInput{
			PetName:          req.PetName,
			Image:            req.Image,
			MaxDonation:      req.MaxDonation,
			LastDate:         lastDate,
			ShortDescription: req.ShortDescription,
			LongDescription:  req.LongDescription,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "campaign not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toCampaignResponse(updated))
	}
}

func togglePauseHandler(svc *Service, admins middleware.AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := chi.URLParam(r, "id")

		if !authorizeOwnerOrAdmin(w, r, svc, admins, campaignID) {
			return
		}

		c, err := svc.TogglePause(r.Context(), campaignID)
		if err != nil {
			if err == ErrNotFound {
				http.Error(w, "campaign not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"is_paused": c.IsPaused,
		})
	}
}

func accrueHandler(svc *Service) http.HandlerFunc {
	return amountHandler(svc.Accrue, "donation amount updated")
}

func revertHandler(svc *Service) http.HandlerFunc {
	return amountHandler(svc.Revert, "donation amount reverted")
}

// amountHandler comparte el shape de accrue/revert: mismo request,
// misma validación, distinto signo en el service.
func amountHandler(op func(ctx context.Context, id string, amount float64) (DonationCampaign, error), okMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req amountRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := op(r.Context(), req.CampaignID, req.Amount)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "invalid campaign id or amount", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "campaign not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"message":          okMessage,
			"updated_campaign": toCampaignResponse(c),
		})
	}
}

// authorizeOwnerOrAdmin carga la campaña y valida owner (o admin bypass).
func authorizeOwnerOrAdmin(w http.ResponseWriter, r *http.Request, svc *Service, admins middleware.AdminChecker, campaignID string) bool {
	claims, _ := middleware.GetClaims(r.Context())

	owner, err := svc.OwnerOf(r.Context(), campaignID)
	if err != nil {
		http.Error(w, "campaign not found", http.StatusNotFound)
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

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func toCampaignResponse(c DonationCampaign) campaignResponse {
	return campaignResponse{
		ID:               c.ID,
		Owner:            c.Owner,
		PetName:          c.PetName,
		Image:            c.Image,
		MaxDonation:      c.MaxDonation,
		DonatedAmount:    c.DonatedAmount,
		LastDate:         c.LastDate.Format("2006-01-02"),
		ShortDescription: c.ShortDescription,
		LongDescription:  c.LongDescription,
		IsPaused:         c.IsPaused,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
