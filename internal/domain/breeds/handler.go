package breeds

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

// RegisterRoutes monta /breeds (ADMIN y CLIENT).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/breeds", func(br chi.Router) {
		br.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleClient))

		br.Post("/", createBreedHandler(svc))
		br.Get("/", listBreedsHandler(svc))
		br.Get("/client/{clientID}", listBreedsByClientHandler(svc))
		br.Get("/pet/{petID}", listBreedsByPetHandler(svc))
		br.Get("/{id}", getBreedHandler(svc))
		br.Put("/{id}", updateBreedHandler(svc))
		br.Delete("/{id}", deleteBreedHandler(svc))
	})
}

type createBreedRequest struct {
	PetID       string `json:"pet_id"`
	Description string `json:"description"`
}

type updateBreedRequest struct {
	PetID       *string `json:"pet_id"`
	Description *string `json:"description"`
}

type breedResponse struct {
	ID          string `json:"id"`
	PetID       string `json:"pet_id"`
	Description string `json:"description"`
}

func toBreedResponse(b Breed) breedResponse {
	return breedResponse{ID: b.ID, PetID: b.PetID, Description: b.Description}
}

func requestScope(r *http.Request) (access.Scope, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return access.Scope{}, false
	}
	return access.ForPrincipal(claims), true
}

func createBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createBreedRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), sc, CreateInput{
			PetID:       req.PetID,
			Description: req.Description,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusCreated, toBreedResponse(b))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "pet not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func listBreedsHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toBreedResponse))
	}
}

func listBreedsByClientHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toBreedResponse))
	}
}

func listBreedsByPetHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toBreedResponse))
	}
}

func getBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "breed not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBreedResponse(b))
	}
}

func updateBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateBreedRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Update(r.Context(), sc, chi.URLParam(r, "id"), UpdateInput{
			PetID:       req.PetID,
			Description: req.Description,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toBreedResponse(b))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "breed not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func deleteBreedHandler(svc *Service) http.HandlerFunc {
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
