package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petshop-api/internal/platform/httpx"
	"petshop-api/internal/ports/auth"
)

// RegisterAuthRoutes monta /auth/register y /auth/login (públicas).
func RegisterAuthRoutes(r chi.Router, svc *Service, issuer auth.Issuer) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc, issuer))
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	CPF      string `json:"cpf"`
	Password string `json:"password"`
	// Role se acepta en el body pero se ignora: el autoregistro nunca
	// puede elevarse a ADMIN.
	Role string `json:"role"`
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// registerHandler godoc
// @Summary Registro
// @Description Alta de usuario CLIENT. 400 si el CPF (o nombre) ya existe.
// @Tags auth
// @Accept json
// @Success 200
// @Failure 400
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			CPF:      req.CPF,
			Password: req.Password,
		})
		switch {
		case err == nil:
			w.WriteHeader(http.StatusOK)
		case errors.Is(err, ErrConflict):
			http.Error(w, "already registered", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// loginHandler godoc
// @Summary Login
// @Description Devuelve {"token": "Bearer <jwt>"}. 403 con credenciales malas.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} tokenResponse
// @Failure 403
// @Router /auth/login [post]
func loginHandler(svc *Service, issuer auth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.Decode(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Login(r.Context(), req.Name, req.Password)
		if err != nil {
			// desconocido o password mala: misma respuesta
			http.Error(w, "invalid credentials", http.StatusForbidden)
			return
		}

		token, _, err := issuer.Issue(auth.Claims{Name: u.Name, CPF: u.CPF, Role: u.Role})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, tokenResponse{Token: "Bearer " + token})
	}
}
