// Package utils holds the request decoding helper shared by the
// delivery handlers.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeJSONRequest strictly decodes the request body into dst; unknown
// fields are rejected so a renamed client field fails loudly instead of
// silently arriving as a zero value.
func DecodeJSONRequest(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
