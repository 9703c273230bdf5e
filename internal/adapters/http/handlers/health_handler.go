package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthHandler responde com uma mensagem simples para verificação de liveness.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
