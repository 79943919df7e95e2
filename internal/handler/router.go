package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/payroll-portal-api/internal/auth"
	"github.com/payroll-portal-api/internal/middleware"
)

// Router настраивает маршруты портала
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	sessions *auth.SessionStore
	authH    *AuthHandler
	portalH  *PortalHandler
}

// NewRouter создаёт новый роутер
func NewRouter(authH *AuthHandler, portalH *PortalHandler, sessions *auth.SessionStore, logger *slog.Logger) *Router {
	return &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		sessions: sessions,
		authH:    authH,
		portalH:  portalH,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	requireAuth := middleware.Authenticate(r.sessions)
	requireAdmin := func(h http.Handler) http.Handler {
		return requireAuth(middleware.RequireAdmin(h))
	}

	// Вход и выход - без сессии
	r.mux.HandleFunc("/auth/", r.authRouter)

	// Маршруты администратора
	r.mux.Handle("/employees", requireAdmin(http.HandlerFunc(r.portalH.Employees)))
	r.mux.Handle("/payslips", requireAdmin(http.HandlerFunc(r.portalH.PayslipsOverview)))
	r.mux.Handle("/payslips/", requireAdmin(http.HandlerFunc(r.payslipsRouter)))

	// Маршруты сотрудника
	r.mux.Handle("/my/payslips", requireAuth(http.HandlerFunc(r.portalH.MyPayslips)))
	r.mux.Handle("/my/payslips/", requireAuth(http.HandlerFunc(r.myPayslipsRouter)))

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// authRouter обрабатывает все запросы к /auth/
func (r *Router) authRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	switch strings.Trim(strings.TrimPrefix(req.URL.Path, "/auth"), "/") {
	case "otp/request":
		r.authH.RequestOTP(w, req)
	case "otp/verify":
		r.authH.VerifyOTP(w, req)
	case "token":
		r.authH.TokenLogin(w, req)
	case "logout":
		r.authH.Logout(w, req)
	default:
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}
}

// payslipsRouter обрабатывает запросы к /payslips/:
// POST /payslips/upload и GET /payslips/{year}/{month}
func (r *Router) payslipsRouter(w http.ResponseWriter, req *http.Request) {
	tail := strings.TrimPrefix(req.URL.Path, "/payslips/")

	if tail == "upload" {
		if req.Method != http.MethodPost {
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		r.portalH.Upload(w, req)
		return
	}

	if req.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	year, month, ok := parsePeriodPath(tail)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	r.portalH.PeriodDetails(w, req, year, month)
}

// myPayslipsRouter обрабатывает GET /my/payslips/{year}/{month}
func (r *Router) myPayslipsRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	year, month, ok := parsePeriodPath(strings.TrimPrefix(req.URL.Path, "/my/payslips/"))
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	r.portalH.MyPayslipDetail(w, req, year, month)
}
