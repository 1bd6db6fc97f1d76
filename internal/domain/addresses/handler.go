package addresses

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/middleware"
	"petshop-api/internal/platform/httpx"
	"petshop-api/internal/ports/auth"
)

// RegisterRoutes monta /address (ADMIN y CLIENT).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/address", func(ar chi.Router) {
		ar.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleClient))

		ar.Post("/", createAddressHandler(svc))
		ar.Get("/", listAddressesHandler(svc))
		ar.Get("/client/{clientID}", listAddressesByClientHandler(svc))
		ar.Get("/{id}", getAddressHandler(svc))
		ar.Put("/{id}", updateAddressHandler(svc))
		ar.Delete("/{id}", deleteAddressHandler(svc))
	})
}

type createAddressRequest struct {
	ClientID     string `json:"client_id"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Complement   string `json:"complement"`
	Tag          string `json:"tag"`
}

type updateAddressRequest struct {
	ClientID     *string `json:"client_id"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
	Neighborhood *string `json:"neighborhood"`
	Complement   *string `json:"complement"`
	Tag          *string `json:"tag"`
}

type addressResponse struct {
	ID           string `json:"id"`
	ClientID     string `json:"client_id"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Tag          string `json:"tag,omitempty"`
}

func toAddressResponse(a Address) addressResponse {
	return addressResponse{
		ID:           a.ID,
		ClientID:     a.ClientID,
		Street:       a.Street,
		City:         a.City,
		Neighborhood: a.Neighborhood,
		Complement:   a.Complement,
		Tag:          a.Tag,
	}
}

func requestScope(r *http.Request) (access.Scope, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return access.Scope{}, false
	}
	return access.ForPrincipal(claims), true
}

func createAddressHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAddressRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), sc, CreateInput{
			ClientID:     req.ClientID,
			Street:       req.Street,
			City:         req.City,
			Neighborhood: req.Neighborhood,
			Complement:   req.Complement,
			Tag:          req.Tag,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusCreated, toAddressResponse(a))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "client not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func listAddressesHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toAddressResponse))
	}
}

func listAddressesByClientHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toAddressResponse))
	}
}

func getAddressHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "address not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAddressResponse(a))
	}
}

func updateAddressHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateAddressRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), sc, chi.URLParam(r, "id"), UpdateInput{
			ClientID:     req.ClientID,
			Street:       req.Street,
			City:         req.City,
			Neighborhood: req.Neighborhood,
			Complement:   req.Complement,
			Tag:          req.Tag,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toAddressResponse(a))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "address not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func deleteAddressHandler(svc *Service) http.HandlerFunc {
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
