package webutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wordvault/internal/model"
)

// DecodeJSONBody decodes the request body into dst, rejecting unknown fields.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}

// ParseUintParam parses a numeric URL or query parameter.
func ParseUintParam(value string) (uint, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, model.ErrInvalidInput
	}
	return uint(n), nil
}
