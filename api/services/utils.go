package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EO-DataHub/eodhp-admin-console/internal/client"
	"github.com/EO-DataHub/eodhp-admin-console/models"
)

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// HandleErrResponse writes err as a JSON error body. Backend HTTP errors keep
// the backend's message.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	response := models.Response{Error: err.Error()}

	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message == "" {
		response.Error = http.StatusText(httpErr.Status)
	}

	WriteResponse(w, statusCode, response)
}
