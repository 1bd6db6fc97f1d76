package pets

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/middleware"
	"petshop-api/internal/platform/httpx"
	"petshop-api/internal/ports/auth"
)

const maxImageBytes = 10 << 20

// RegisterRoutes monta /pets (ADMIN y CLIENT; un CLIENT solo ve sus
// propias mascotas).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleClient))

		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/client/{clientID}", listPetsByClientHandler(svc))
		pr.Get("/{id}", getPetHandler(svc))
		pr.Put("/{id}", updatePetHandler(svc))
		pr.Delete("/{id}", deletePetHandler(svc))

		pr.Post("/{id}/upload-image", uploadPetImageHandler(svc))
		pr.Get("/{id}/download-image", downloadPetImageHandler(svc))
	})
}

type createPetRequest struct {
	ClientID  string     `json:"client_id"`
	BreedID   string     `json:"breed_id"`
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date"`
}

type updatePetRequest struct {
	ClientID  *string    `json:"client_id"`
	BreedID   *string    `json:"breed_id"`
	Name      *string    `json:"name"`
	BirthDate *time.Time `json:"birth_date"`
}

type petResponse struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	BreedID   string     `json:"breed_id,omitempty"`
	Name      string     `json:"name"`
	Image     string     `json:"image,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		BreedID:   p.BreedID,
		Name:      p.Name,
		Image:     p.Image,
		BirthDate: p.BirthDate,
	}
}

func requestScope(r *http.Request) (access.Scope, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return access.Scope{}, false
	}
	return access.ForPrincipal(claims), true
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), sc, CreateInput{
			ClientID:  req.ClientID,
			BreedID:   req.BreedID,
			Name:      req.Name,
			BirthDate: req.BirthDate,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
		case errors.Is(err, ErrNotFound):
			// cliente padre fuera del scope o inexistente
			http.Error(w, "client not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toPetResponse))
	}
}

func listPetsByClientHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toPetResponse))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), sc, chi.URLParam(r, "id"), UpdateInput{
			ClientID:  req.ClientID,
			BreedID:   req.BreedID,
			Name:      req.Name,
			BirthDate: req.BirthDate,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "pet not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
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

func uploadPetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file part required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if !svc.UploadImage(r.Context(), sc, chi.URLParam(r, "id"), header.Filename, file) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func downloadPetImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rc, name, err := svc.ProfileImage(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
		_, _ = io.Copy(w, rc)
	}
}
