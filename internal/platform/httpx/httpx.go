package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON era un helper duplicado por módulo; con siete módulos ya
// conviene tenerlo compartido.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode lee el body JSON al destino. No valida campos: eso es de los
// services.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
