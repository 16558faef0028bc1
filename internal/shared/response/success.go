package response

import (
	"encoding/json"
	"net/http"

	"conquest-server/internal/shared/errors"
)

const maxBodyBytes = 1 << 16

func Success(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Decode reads a JSON request body into dst. Unknown fields and bodies
// larger than 64 KiB are validation errors.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.WrapValidation("invalid request body", err)
	}
	return nil
}
