package appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/middleware"
	"petshop-api/internal/platform/httpx"
	"petshop-api/internal/ports/auth"
)

// RegisterRoutes monta /appointments (ADMIN y CLIENT).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleClient))

		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/client/{clientID}", listAppointmentsByClientHandler(svc))
		ar.Get("/pet/{petID}", listAppointmentsByPetHandler(svc))
		ar.Get("/{id}", getAppointmentHandler(svc))
		ar.Put("/{id}", updateAppointmentHandler(svc))
		ar.Delete("/{id}", deleteAppointmentHandler(svc))
	})
}

type createAppointmentRequest struct {
	PetID       string    `json:"pet_id"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	Date        time.Time `json:"date"`
}

type updateAppointmentRequest struct {
	PetID       *string    `json:"pet_id"`
	Description *string    `json:"description"`
	Cost        *float64   `json:"cost"`
	Date        *time.Time `json:"date"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	Date        time.Time `json:"date"`
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		Description: a.Description,
		Cost:        a.Cost,
		Date:        a.Date,
	}
}

func requestScope(r *http.Request) (access.Scope, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return access.Scope{}, false
	}
	return access.ForPrincipal(claims), true
}

func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAppointmentRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), sc, CreateInput{
			PetID:       req.PetID,
			Description: req.Description,
			Cost:        req.Cost,
			Date:        req.Date,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusCreated, toAppointmentResponse(a))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "pet not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		pg, err := svc.List(r.Context(), sc, paging.FromRequest(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toAppointmentResponse))
	}
}

func listAppointmentsByClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		pg, err := svc.ListByClient(r.Context(), sc, chi.URLParam(r, "clientID"), paging.FromRequest(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toAppointmentResponse))
	}
}

func listAppointmentsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		pg, err := svc.ListByPet(r.Context(), sc, chi.URLParam(r, "petID"), paging.FromRequest(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toAppointmentResponse))
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateAppointmentRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), sc, chi.URLParam(r, "id"), UpdateInput{
			PetID:       req.PetID,
			Description: req.Description,
			Cost:        req.Cost,
			Date:        req.Date,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "appointment not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		deleted, err := svc.Delete(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deleted)
	}
}
