package ui

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"salesboard/domain/core"
	"salesboard/internal/errors"
)

// writeJSON encodes a payload with the given status
func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("[App] failed to encode response: %v", err)
	}
}

// writeError maps application errors to HTTP statuses and responds with a
// JSON error body
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)

	switch {
	case core.IsNotFoundError(err), code == errors.CodeNotFound:
		status = http.StatusNotFound
		code = errors.CodeNotFound
	case core.IsMappingError(err), code == errors.CodeValidationError:
		status = http.StatusUnprocessableEntity
		code = errors.CodeValidationError
	case stderrors.Is(err, core.ErrUnsupportedFormat), stderrors.Is(err, core.ErrNoHeader),
		code == errors.CodeInvalidInput:
		status = http.StatusBadRequest
		code = errors.CodeInvalidInput
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("[App] request failed: %v", err)
	} else {
		a.logger.Debug("[App] rejected request: %v", err)
	}

	a.writeJSON(w, status, map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}
