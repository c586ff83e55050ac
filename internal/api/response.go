package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := dtos.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithDomainError maps a service error to its HTTP status. Validation
// errors carry their per-field messages in the details map. Errors outside
// the domain taxonomy are logged and answered with a generic message so
// persistence detail never reaches the client.
func respondWithDomainError(w http.ResponseWriter, err error) {
	statusCode := common.HTTPStatus(err)
	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		logging.Error("Unhandled service error", "error", err.Error())
		message = constants.MsgDBError
	}

	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
		Details:   common.FieldMessages(err),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}
