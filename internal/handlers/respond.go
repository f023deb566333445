package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes any payload with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes the {status, message} error body. 4xx responses
// report "fail", 5xx report "error".
func respondError(w http.ResponseWriter, status int, message string) {
	kind := "error"
	if status < http.StatusInternalServerError {
		kind = "fail"
	}
	respondJSON(w, status, map[string]string{
		"status":  kind,
		"message": message,
	})
}

// courseEnvelope is the {status, data:{...}} wrapper course responses use.
// Paper responses stay plain resources, matching the historical API.
func courseEnvelope(key string, value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{key: value},
	}
}

func courseListEnvelope(courses interface{}, results int) map[string]interface{} {
	return map[string]interface{}{
		"status":  "success",
		"results": results,
		"data":    map[string]interface{}{"courses": courses},
	}
}
