package clients

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

// RegisterRoutes monta /clients (ADMIN y CLIENT; un CLIENT solo ve y
// toca su propio perfil).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleClient))

		cr.Post("/", createClientHandler(svc))
		cr.Get("/", listClientsHandler(svc))
		cr.Get("/{id}", getClientHandler(svc))
		cr.Put("/{id}", updateClientHandler(svc))
		cr.Delete("/{id}", deleteClientHandler(svc))

		cr.Post("/{id}/upload-image", uploadClientImageHandler(svc))
		cr.Get("/{id}/download-image", downloadClientImageHandler(svc))
	})
}

type createClientRequest struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

type updateClientRequest struct {
	Name *string `json:"name"`
	CPF  *string `json:"cpf"`
}

type clientResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CPF              string    `json:"cpf"`
	Image            string    `json:"image,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:               c.ID,
		Name:             c.Name,
		CPF:              c.CPF,
		Image:            c.Image,
		RegistrationDate: c.RegistrationDate,
	}
}

func requestScope(r *http.Request) (access.Scope, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return access.Scope{}, false
	}
	return access.ForPrincipal(claims), true
}

// createClientHandler godoc
// @Summary Crear cliente
// @Description Un CLIENT solo puede crear un perfil con su propio CPF (se fuerza).
// @Tags clients
// @Accept json
// @Produce json
// @Router /api/v1/clients [post]
func createClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createClientRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), sc, CreateInput{Name: req.Name, CPF: req.CPF})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusCreated, toClientResponse(c))
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func listClientsHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toClientResponse))
	}
}

func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			// ajeno o inexistente: misma respuesta
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
	}
}

func updateClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateClientRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), sc, chi.URLParam(r, "id"), UpdateInput{
			Name: req.Name,
			CPF:  req.CPF,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "client not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func deleteClientHandler(svc *Service) http.HandlerFunc {
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

func uploadClientImageHandler(svc *Service) http.HandlerFunc {
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
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func downloadClientImageHandler(svc *Service) http.HandlerFunc {
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
