package utils

import (
	"encoding/json"
	"net/http"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type M map[string]interface{}

// Success wraps data in the {success, data} envelope.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	RespondWithJSON(w, statusCode, M{"success": true, "data": data})
}

// SuccessCount is Success plus a count field for list responses.
func SuccessCount(w http.ResponseWriter, statusCode int, count int, data interface{}) {
	RespondWithJSON(w, statusCode, M{"success": true, "count": count, "data": data})
}

// Fail reports an error with an optional diagnostic message.
func Fail(w http.ResponseWriter, statusCode int, errMsg, message string) {
	body := M{"error": errMsg}
	if message != "" {
		body["message"] = message
	}
	RespondWithJSON(w, statusCode, body)
}

// FailRequired reports a 400 listing the missing required fields.
func FailRequired(w http.ResponseWriter, errMsg string, required []string) {
	RespondWithJSON(w, http.StatusBadRequest, M{"error": errMsg, "required": required})
}
