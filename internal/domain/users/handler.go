package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petshop-api/internal/domain/paging"
	"petshop-api/internal/middleware"
	"petshop-api/internal/platform/httpx"
	"petshop-api/internal/ports/auth"
)

// RegisterRoutes monta el CRUD administrativo de usuarios (solo ADMIN).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Use(middleware.RequireRoles(auth.RoleAdmin))

		ur.Post("/", createUserHandler(svc))
		ur.Get("/", listUsersHandler(svc))
		ur.Get("/{cpf}", getUserHandler(svc))
		ur.Put("/{cpf}", updateUserHandler(svc))
		ur.Delete("/{cpf}", deleteUserHandler(svc))
	})
}

type createUserRequest struct {
	CPF      string `json:"cpf"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	// Punteros para merge parcial: nil = no tocar.
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// userResponse nunca incluye el hash.
type userResponse struct {
	CPF  string `json:"cpf"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func toUserResponse(u User) userResponse {
	return userResponse{CPF: u.CPF, Name: u.Name, Role: string(u.Role)}
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			CPF:      req.CPF,
			Name:     req.Name,
			Password: req.Password,
			Role:     auth.Role(req.Role),
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
		case errors.Is(err, ErrConflict):
			http.Error(w, "already registered", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pg, err := svc.List(r.Context(), paging.FromRequest(r))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, paging.Map(pg, toUserResponse))
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), chi.URLParam(r, "cpf"))
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var role *auth.Role
		if req.Role != nil {
			parsed, ok := auth.ParseRole(*req.Role)
			if !ok {
				http.Error(w, "invalid role", http.StatusBadRequest)
				return
			}
			role = &parsed
		}

		u, err := svc.Update(r.Context(), chi.URLParam(r, "cpf"), UpdateInput{
			Name:     req.Name,
			Role:     role,
			Password: req.Password,
		})
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
		case errors.Is(err, ErrNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := svc.Delete(r.Context(), chi.URLParam(r, "cpf"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		// igual que el resto de los deletes: boolean en el body,
		// segunda llamada devuelve false
		httpx.WriteJSON(w, http.StatusOK, deleted)
	}
}
