package httpapi

import (
	"encoding/json"
	"net/http"

	"greensignal-engine/internal/secrets"
)

type SecretsHandler struct{}

type setRegisterKeyReq struct {
	APIKey string `json:"api_key"`
}

func (h SecretsHandler) SetRegisterKey(w http.ResponseWriter, r *http.Request) {
	var req setRegisterKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	if err := secrets.SetRegisterAPIKey(req.APIKey); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
