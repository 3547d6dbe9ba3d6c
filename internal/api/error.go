package api

import (
	"errors"
	"net/http"

	"github.com/viniapp/viniapp-node/internal/common"
)

// ErrorHandlerFunc is an error adapter for the API. It is used to standardize errors happening in the generated code api handlers
func ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	var invalidParamFormatError *InvalidParamFormatError
	switch {
	case errors.As(err, &invalidParamFormatError):
		writeJSONError(w, http.StatusBadRequest, GenericErrorMessage{Error: "Invalid parameter", Message: common.ToPointer(err.Error())})
	default:
		writeJSONError(w, http.StatusBadRequest, GenericErrorMessage{Error: "Invalid request", Message: common.ToPointer(err.Error())})
	}
}
