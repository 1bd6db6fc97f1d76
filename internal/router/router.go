package router

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "petshop-api/internal/adapters/storage/memory"
	pg "petshop-api/internal/adapters/storage/postgres"
	"petshop-api/internal/config"
	"petshop-api/internal/domain/addresses"
	"petshop-api/internal/domain/appointments"
	"petshop-api/internal/domain/breeds"
	"petshop-api/internal/domain/clients"
	"petshop-api/internal/domain/contacts"
	"petshop-api/internal/domain/pets"
	"petshop-api/internal/domain/users"
	"petshop-api/internal/middleware"
	"petshop-api/internal/platform/logger"
	"petshop-api/internal/platform/metrics"
	"petshop-api/internal/ports/auth"
	"petshop-api/internal/ports/images"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	Verifier auth.Verifier
	Issuer   auth.Issuer
	Images   images.Store

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)
	r.Use(metrics.Instrument)

	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		usersRepo        users.Repository
		clientsRepo      clients.Repository
		petsRepo         pets.Repository
		breedsRepo       breeds.Repository
		addressesRepo    addresses.Repository
		contactsRepo     contacts.Repository
		appointmentsRepo appointments.Repository
	)

	if opts.DB != nil {
		usersRepo = pg.NewUsersRepo(opts.DB)
		clientsRepo = pg.NewClientsRepo(opts.DB)
		petsRepo = pg.NewPetsRepo(opts.DB)
		breedsRepo = pg.NewBreedsRepo(opts.DB)
		addressesRepo = pg.NewAddressesRepo(opts.DB)
		contactsRepo = pg.NewContactsRepo(opts.DB)
		appointmentsRepo = pg.NewAppointmentsRepo(opts.DB)
	} else {
		cr := mem.NewClientsRepo()
		pr := mem.NewPetsRepo(cr)
		usersRepo = mem.NewUsersRepo()
		clientsRepo = cr
		petsRepo = pr
		breedsRepo = mem.NewBreedsRepo(pr)
		addressesRepo = mem.NewAddressesRepo(cr)
		contactsRepo = mem.NewContactsRepo(cr)
		appointmentsRepo = mem.NewAppointmentsRepo(pr)
	}

	// Services por módulo; los hijos reciben la vista mínima del padre
	// para el chequeo de propiedad.
	usersSvc := users.NewService(usersRepo)
	clientsSvc := clients.NewService(clientsRepo, opts.Images)
	petsSvc := pets.NewService(petsRepo, clientsSvc, opts.Images)
	breedsSvc := breeds.NewService(breedsRepo, petsSvc)
	addressesSvc := addresses.NewService(addressesRepo, clientsSvc)
	contactsSvc := contacts.NewService(contactsRepo, clientsSvc)
	appointmentsSvc := appointments.NewService(appointmentsRepo, petsSvc)

	if opts.Config.Seed.Enabled {
		created, err := users.EnsureAdmin(context.Background(), usersSvc, users.SeedConfig{
			CPF:      opts.Config.Seed.AdminCPF,
			Name:     opts.Config.Seed.AdminName,
			Password: opts.Config.Seed.AdminPassword,
		})
		if err != nil {
			opts.Logger.Error("seed admin", map[string]any{"error": err.Error()})
		} else if created {
			opts.Logger.Info("seed admin created", map[string]any{"cpf": opts.Config.Seed.AdminCPF})
		}
	}

	users.RegisterAuthRoutes(r, usersSvc, opts.Issuer)

	r.Route("/api/v1", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc)
		clients.RegisterRoutes(api, clientsSvc)
		pets.RegisterRoutes(api, petsSvc)
		breeds.RegisterRoutes(api, breedsSvc)
		addresses.RegisterRoutes(api, addressesSvc)
		contacts.RegisterRoutes(api, contactsSvc)
		appointments.RegisterRoutes(api, appointmentsSvc)
	})

	return r
}
