package donations

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Público: el muro de donantes que acompaña el detalle de campaña
	r.Get("/campaign-donations/{campaignID}", listCampaignDonationsHandler(svc))

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Post("/donations", createDonationHandler(svc))
		ar.Get("/donations/{email}", listMyDonationsHandler(svc))
	})
}

type createDonationRequest struct {
	CampaignID string  `json:"campaign_id"`
	PetName    string  `json:"pet_name"`
	Amount     float64 `json:"amount"`
}

type donationResponse struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	DonatedBy  string    `json:"donated_by"`
	PetName    string    `json:"pet_name"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

func createDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createDonationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			CampaignID: req.CampaignID,
			DonatedBy:  claims.Email,
			PetName:    req.PetName,
			Amount:     req.Amount,
		})
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

		writeJSON(w, http.StatusCreated, toDonationResponse(d))
	}
}

func listMyDonationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		email := chi.URLParam(r, "email")
		if !middleware.IsOwner(claims.Email, email) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByDonor(r.Context(), email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listCampaignDonationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByCampaign(r.Context(), chi.URLParam(r, "campaignID"))
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, "campaign id is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toDonationResponse(d Donation) donationResponse {
	return donationResponse{
		ID:         d.ID,
		CampaignID: d.CampaignID,
		DonatedBy:  d.DonatedBy,
		PetName:    d.PetName,
		Amount:     d.Amount,
		CreatedAt:  d.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
