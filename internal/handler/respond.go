package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/payroll-portal-api/internal/domain"
	"github.com/payroll-portal-api/internal/dto"
)

// handleServiceError транслирует бизнес-ошибки в HTTP статусы.
// Промахи поиска - обычный отрицательный результат (404), а не сбой.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		respondError(w, logger, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrPayslipNotFound):
		respondError(w, logger, http.StatusNotFound, "no payslip found for this period", "")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, logger, http.StatusUnauthorized, "employee id or mobile number is incorrect", "")
	case errors.Is(err, domain.ErrInvalidOTP):
		respondError(w, logger, http.StatusUnauthorized, "verification code is invalid or expired", "")
	case errors.Is(err, domain.ErrSessionExpired):
		respondError(w, logger, http.StatusUnauthorized, "session is invalid or expired", "")
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, logger, http.StatusForbidden, "operation requires administrator role", "")
	case errors.Is(err, domain.ErrIdentityLoginDisabled):
		respondError(w, logger, http.StatusNotImplemented, "identity provider login is not configured", "")
	case errors.Is(err, domain.ErrDuplicateColumn):
		respondError(w, logger, http.StatusBadRequest, "spreadsheet headers are ambiguous", err.Error())
	case errors.Is(err, domain.ErrEmptySheet):
		respondError(w, logger, http.StatusBadRequest, "spreadsheet has no data rows", "")
	default:
		logger.Error("internal error", slog.Any("error", err))
		respondError(w, logger, http.StatusInternalServerError, "internal server error", "")
	}
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
