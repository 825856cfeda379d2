package router

import (
	"database/sql"
	"net/http"
	"time"

	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/campaigns"
	"pet-adoption/internal/domain/donations"
	"pet-adoption/internal/domain/payments"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/ports/auth"
	paymentsport "pet-adoption/internal/ports/payments"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Options struct {
	Issuer auth.TokenIssuer // puede ser nil (modo dev: header X-Debug-User-Email)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si viene nil, POST /create-payment-intent responde 503.
	Payments paymentsport.IntentCreator

	Logger zerolog.Logger

	CookieSecure   bool
	RequestTimeout time.Duration
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(opts.Logger))

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	r.Use(chimw.Timeout(timeout))

	r.Use(middleware.AuthContext(opts.Issuer))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		userRepo     users.Repository
		petRepo      pets.Repository
		adoptionRepo adoptions.Repository
		campaignRepo campaigns.Repository
		donationRepo donations.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUserRepo(opts.DB)
		petRepo = pg.NewPetRepo(opts.DB)
		adoptionRepo = pg.NewAdoptionRepo(opts.DB)
		campaignRepo = pg.NewCampaignRepo(opts.DB)
		donationRepo = pg.NewDonationRepo(opts.DB)
	} else {
		memPets := mem.NewPetRepo()
		userRepo = mem.NewUserRepo()
		petRepo = memPets
		// el repo de adopciones in-memory comparte la colección de
		// mascotas para el workflow de aceptación
		adoptionRepo = mem.NewAdoptionRepo(memPets)
		campaignRepo = mem.NewCampaignRepo()
		donationRepo = mem.NewDonationRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	petsSvc := pets.NewService(petRepo)
	adoptionsSvc := adoptions.NewService(adoptionRepo, petsSvc)
	campaignsSvc := campaigns.NewService(campaignRepo)
	donationsSvc := donations.NewService(donationRepo, campaignsSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, opts.Issuer,
		users.CookieOptions{Secure: opts.CookieSecure},
		middleware.RequireAdmin(usersSvc),
	)
	pets.RegisterRoutes(r, petsSvc, usersSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc, usersSvc)
	campaigns.RegisterRoutes(r, campaignsSvc, usersSvc)
	donations.RegisterRoutes(r, donationsSvc)
	payments.RegisterRoutes(r, opts.Payments)

	return r
}
