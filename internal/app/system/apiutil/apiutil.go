// internal/app/system/apiutil/apiutil.go

// Package apiutil holds the small JSON response helpers every feature
// handler shares.
package apiutil

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a bare {"message": …} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}
