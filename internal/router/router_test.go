package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"petshop-api/internal/adapters/auth/jwt"
	"petshop-api/internal/adapters/images/fsstore"
	"petshop-api/internal/config"
	"petshop-api/internal/platform/logger"
	"petshop-api/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{}
	cfg.Seed = config.Seed{
		Enabled:       true,
		AdminCPF:      "12345678900",
		AdminName:     "admin",
		AdminPassword: "admin123",
	}
	cfg.CORS.AllowedOrigins = []string{"*"}

	codec := jwt.NewCodec("test-secret", "petshop-api", time.Hour)

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config:   cfg,
		Logger:   logger.New(logger.Options{Level: logger.Error}),
		Verifier: codec,
		Issuer:   codec,
		Images:   fsstore.New(t.TempDir()),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		// el login ya devuelve el token con prefijo "Bearer "
		req.Header.Set("Authorization", token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func register(t *testing.T, baseURL, name, cpf, pass string) {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"name": name, "cpf": cpf, "password": pass,
	})
	require.Equal(t, http.StatusOK, st, "register: %s", body)
}

func login(t *testing.T, baseURL, name, pass string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/auth/login", "", map[string]any{
		"name": name, "password": pass,
	})
	require.Equal(t, http.StatusOK, st, "login: %s", body)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHTTP_EndToEnd_OwnershipScoping(t *testing.T) {
	ts := newTestServer(t)

	// sin token: 401
	st, _ := doReq(t, ts.URL, "GET", "/api/v1/clients", "", nil)
	require.Equal(t, http.StatusUnauthorized, st)

	register(t, ts.URL, "ana", "11111111111", "secreta123")
	anaTok := login(t, ts.URL, "ana", "secreta123")

	// ana crea su perfil con un CPF ajeno en el payload: se fuerza el suyo
	st, body := doReq(t, ts.URL, "POST", "/api/v1/clients", anaTok, map[string]any{
		"name": "Ana", "cpf": "99999999999",
	})
	require.Equal(t, http.StatusCreated, st, "create client: %s", body)
	var client struct {
		ID  string `json:"id"`
		CPF string `json:"cpf"`
	}
	require.NoError(t, json.Unmarshal(body, &client))
	require.Equal(t, "11111111111", client.CPF)

	// ana crea una mascota bajo su cliente
	st, body = doReq(t, ts.URL, "POST", "/api/v1/pets", anaTok, map[string]any{
		"client_id": client.ID, "name": "Milo",
	})
	require.Equal(t, http.StatusCreated, st, "create pet: %s", body)
	var pet struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &pet))

	// otro CLIENT no ve nada de ana: 404, nunca 403
	register(t, ts.URL, "bruno", "22222222222", "secreta123")
	brunoTok := login(t, ts.URL, "bruno", "secreta123")

	st, _ = doReq(t, ts.URL, "GET", "/api/v1/clients/"+client.ID, brunoTok, nil)
	require.Equal(t, http.StatusNotFound, st)
	st, _ = doReq(t, ts.URL, "GET", "/api/v1/pets/"+pet.ID, brunoTok, nil)
	require.Equal(t, http.StatusNotFound, st)
	st, _ = doReq(t, ts.URL, "POST", "/api/v1/pets", brunoTok, map[string]any{
		"client_id": client.ID, "name": "Intruso",
	})
	require.Equal(t, http.StatusNotFound, st)

	// el admin sembrado ve todo
	adminTok := login(t, ts.URL, "admin", "admin123")
	st, _ = doReq(t, ts.URL, "GET", "/api/v1/clients/"+client.ID, adminTok, nil)
	require.Equal(t, http.StatusOK, st)
	st, body = doReq(t, ts.URL, "GET", "/api/v1/pets", adminTok, nil)
	require.Equal(t, http.StatusOK, st)
	var page struct {
		TotalItems int64 `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	require.EqualValues(t, 1, page.TotalItems)
}

func TestHTTP_RoleGates(t *testing.T) {
	ts := newTestServer(t)

	register(t, ts.URL, "ana", "11111111111", "secreta123")
	anaTok := login(t, ts.URL, "ana", "secreta123")
	adminTok := login(t, ts.URL, "admin", "admin123")

	// /users y /contacts son solo ADMIN: CLIENT recibe 403
	st, _ := doReq(t, ts.URL, "GET", "/api/v1/users", anaTok, nil)
	require.Equal(t, http.StatusForbidden, st)
	st, _ = doReq(t, ts.URL, "GET", "/api/v1/contacts", anaTok, nil)
	require.Equal(t, http.StatusForbidden, st)

	st, _ = doReq(t, ts.URL, "GET", "/api/v1/users", adminTok, nil)
	require.Equal(t, http.StatusOK, st)

	// token inválido no cuenta como principal: 401
	st, _ = doReq(t, ts.URL, "GET", "/api/v1/users", "Bearer basura", nil)
	require.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_RegisterNeverGrantsAdmin(t *testing.T) {
	ts := newTestServer(t)

	// el body pide ADMIN; el autoregistro lo ignora
	st, body := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"name": "mallory", "cpf": "33333333333", "password": "secreta123", "role": "ADMIN",
	})
	require.Equal(t, http.StatusOK, st, "register: %s", body)

	adminTok := login(t, ts.URL, "admin", "admin123")
	st, body = doReq(t, ts.URL, "GET", "/api/v1/users/33333333333", adminTok, nil)
	require.Equal(t, http.StatusOK, st)

	var u struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body, &u))
	require.Equal(t, "CLIENT", u.Role)
}

func TestHTTP_LoginFailures(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts.URL, "ana", "11111111111", "secreta123")

	// desconocido y password mala responden igual
	st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"name": "nadie", "password": "secreta123",
	})
	require.Equal(t, http.StatusForbidden, st)
	st, _ = doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"name": "ana", "password": "incorrecta",
	})
	require.Equal(t, http.StatusForbidden, st)

	// registro duplicado: 400
	st, _ = doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"name": "ana", "cpf": "11111111111", "password": "secreta123",
	})
	require.Equal(t, http.StatusBadRequest, st)
}
