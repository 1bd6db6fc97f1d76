package contacts

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

// RegisterRoutes monta /contacts (solo ADMIN).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/contacts", func(cr chi.Router) {
		cr.Use(middleware.RequireRoles(auth.RoleAdmin))

		cr.Post("/", createContactHandler(svc))
		cr.Get("/", listContactsHandler(svc))
		cr.Get("/{id}", getContactHandler(svc))
		cr.Put("/{id}", updateContactHandler(svc))
		cr.Delete("/{id}", deleteContactHandler(svc))
	})
}

type createContactRequest struct {
	ClientID string `json:"client_id"`
	Tag      string `json:"tag"`
	Type     string `json:"type"`
	Value    string `json:"value"`
}

type updateContactRequest struct {
	ClientID *string `json:"client_id"`
	Tag      *string `json:"tag"`
	Type     *string `json:"type"`
	Value    *string `json:"value"`
}

type contactResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Tag      string `json:"tag,omitempty"`
	Type     string `json:"type"`
	Value    string `json:"value"`
}

func toContactResponse(c Contact) contactResponse {
	return contactResponse{ID: c.ID, ClientID: c.ClientID, Tag: c.Tag, Type: c.Type, Value: c.Value}
}

func requestScope(r *http.Request) (access.Scope, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return access.Scope{}, false
	}
	return access.ForPrincipal(claims), true
}

func createContactHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createContactRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), sc, CreateInput{
			ClientID: req.ClientID,
			Tag:      req.Tag,
			Type:     req.Type,
			Value:    req.Value,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusCreated, toContactResponse(c))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "client not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func listContactsHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toContactResponse))
	}
}

func getContactHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.Get(r.Context(), sc, chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toContactResponse(c))
	}
}

func updateContactHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := requestScope(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateContactRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), sc, chi.URLParam(r, "id"), UpdateInput{
			ClientID: req.ClientID,
			Tag:      req.Tag,
			Type:     req.Type,
			Value:    req.Value,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toContactResponse(c))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "contact not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func deleteContactHandler(svc *Service) http.HandlerFunc {
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
