package payments

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/middleware"
	paymentsport "pet-adoption/internal/ports/payments"
)

func RegisterRoutes(r chi.Router, creator paymentsport.IntentCreator) {
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Post("/create-payment-intent", createIntentHandler(creator))
	})
}

type createIntentRequest struct {
	Amount float64 `json:"amount"`
}

func createIntentHandler(creator paymentsport.IntentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if creator == nil {
			http.Error(w, "payments not configured", http.StatusServiceUnavailable)
			return
		}

		var req createIntentRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
			http.Error(w, "amount must be a positive number", http.StatusBadRequest)
			return
		}

		intent, err := creator.CreateIntent(r.Context(), req.Amount)
		if err != nil {
			// Cualquier falla del procesador se reporta como 500;
			// el caller puede reintentar el request completo.
			http.Error(w, "payment processor error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"client_secret": intent.ClientSecret,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
