package api

import (
	"encoding/json"
	"net/http"

	"github.com/viniapp/viniapp-node/internal/common"
)

// RequestErrorHandlerFunc is a Request Error Handler that can be injected in oapi-codegen to handler errors in requests
func RequestErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSONError(w, http.StatusBadRequest, GenericErrorMessage{Error: "Invalid request", Message: common.ToPointer(err.Error())})
}

// ResponseErrorHandlerFunc is a Response Error Handler that can be injected in oapi-codegen to handler errors in requests
func ResponseErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSONError(w, http.StatusInternalServerError, GenericErrorMessage{Error: "Internal server error", Message: common.ToPointer(err.Error())})
}

func writeJSONError(w http.ResponseWriter, status int, body GenericErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
