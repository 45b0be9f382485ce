package httpapi

import (
	"encoding/json"
	"net/http"
)

// APIError is the error envelope for every non-2xx JSON response. Codes in
// use: missing_name, missing_company_number, missing_query, invalid_json,
// invalid_site, invalid_override, not_found, register_unavailable,
// jobsearch_unavailable, keyring_error, store_error, save_failed,
// reload_failed, rate_limited, internal_error.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}
