package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/payroll-portal-api/internal/auth"
	"github.com/payroll-portal-api/internal/dto"
	"github.com/payroll-portal-api/internal/middleware"
	"github.com/payroll-portal-api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
		logger:      logger,
	}
}

// RequestOTP принимает пару (код сотрудника, телефон) и при совпадении
// с базой отправляет одноразовый код
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	if err := h.authService.RequestOTP(r.Context(), req.EmployeeID, req.PhoneNumber); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dto.MessageResponse{
		Message: "verification code sent",
	})
}

// VerifyOTP проверяет код и открывает сессию: токен уходит в cookie,
// роль возвращается в теле
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	session, err := h.authService.VerifyOTP(r.Context(), req.EmployeeID, req.Code)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.setSessionCookie(w, session)
	respondJSON(w, h.logger, http.StatusOK, dto.LoginResponse{
		EmployeeID: session.EmployeeID,
		Role:       session.Role,
	})
}

// TokenLogin входит по токену внешнего провайдера идентификации
func (h *AuthHandler) TokenLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	session, err := h.authService.LoginWithToken(r.Context(), req.IDToken)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.setSessionCookie(w, session)
	respondJSON(w, h.logger, http.StatusOK, dto.LoginResponse{
		EmployeeID: session.EmployeeID,
		Role:       session.Role,
	})
}

// Logout завершает сессию и гасит cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, h.logger, http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
