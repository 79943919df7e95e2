package handler

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/payroll-portal-api/internal/dto"
	"github.com/payroll-portal-api/internal/middleware"
	"github.com/payroll-portal-api/internal/service"
)

// максимальный размер формы загрузки
const maxUploadBytes = 32 << 20

type PortalHandler struct {
	empService     service.EmployeeService
	payslipService service.PayslipService
	importService  service.ImportService
	logger         *slog.Logger
}

func NewPortalHandler(
	empService service.EmployeeService,
	payslipService service.PayslipService,
	importService service.ImportService,
	logger *slog.Logger,
) *PortalHandler {
	return &PortalHandler{
		empService:     empService,
		payslipService: payslipService,
		importService:  importService,
		logger:         logger,
	}
}

// Employees отдаёт базовый список сотрудников
func (h *PortalHandler) Employees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.empService.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	resp := make([]dto.EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = dto.EmployeeResponse{
			EmployeeID:   emp.EmployeeID,
			EmployeeName: emp.EmployeeName,
			NationalID:   emp.NationalID,
			MobileNumber: emp.MobileNumber,
			Role:         emp.Role,
		}
	}
	respondJSON(w, h.logger, http.StatusOK, resp)
}

// PayslipsOverview отдаёт все расчётные периоды, сгруппированные по годам
func (h *PortalHandler) PayslipsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.payslipService.Overview(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, overview)
}

// PeriodDetails отдаёт сводку и список листков одного периода
func (h *PortalHandler) PeriodDetails(w http.ResponseWriter, r *http.Request, year int, month string) {
	details, err := h.payslipService.PeriodDetails(r.Context(), year, month)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	resp := dto.PeriodDetailsResponse{
		Summary: dto.PeriodSummaryResponse{
			Year:           year,
			Month:          month,
			TotalEmployees: details.Summary.TotalEmployees,
			TotalNetSalary: details.Summary.TotalNetSalary,
		},
		Payslips: make([]dto.PayslipRowResponse, len(details.Payslips)),
	}
	for i, p := range details.Payslips {
		resp.Payslips[i] = dto.PayslipRowResponse{
			EmployeeID:        p.EmployeeID,
			EmployeeName:      p.EmployeeName,
			BasicSalary:       p.BasicSalary,
			TotalEntitlements: p.TotalEntitlements,
			TotalDeductions:   p.TotalDeductions,
			NetSalary:         p.NetSalary,
		}
	}
	respondJSON(w, h.logger, http.StatusOK, resp)
}

// Upload принимает файл выгрузки (.xlsx), год и месяц периода.
// Ответ - число обработанных строк.
func (h *PortalHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}

	file, header, err := r.FormFile("payslip_file")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "payslip_file is required", "")
		return
	}
	defer file.Close()

	if !strings.EqualFold(path.Ext(header.Filename), ".xlsx") {
		respondError(w, h.logger, http.StatusBadRequest, "only .xlsx files are accepted", "")
		return
	}

	year, err := strconv.Atoi(r.FormValue("pay_year"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "pay_year must be an integer", "")
		return
	}

	month := r.FormValue("pay_month")
	if month == "" {
		respondError(w, h.logger, http.StatusBadRequest, "pay_month is required", "")
		return
	}

	processed, err := h.importService.Import(r.Context(), file, year, month)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dto.UploadResponse{Processed: processed})
}

// MyPayslips отдаёт периоды аутентифицированного сотрудника
func (h *PortalHandler) MyPayslips(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, h.logger, http.StatusUnauthorized, "authentication required", "")
		return
	}

	periods, err := h.payslipService.MyPeriods(r.Context(), principal.EmployeeID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, periods)
}

// MyPayslipDetail отдаёт листок сотрудника за период, разнесённый
// по корзинам начислений и удержаний
func (h *PortalHandler) MyPayslipDetail(w http.ResponseWriter, r *http.Request, year int, month string) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, h.logger, http.StatusUnauthorized, "authentication required", "")
		return
	}

	breakdown, err := h.payslipService.Detail(r.Context(), principal.EmployeeID, year, month)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dto.PayslipDetailResponse{
		Entitlements:      breakdown.Entitlements,
		Deductions:        breakdown.Deductions,
		TotalEntitlements: breakdown.TotalEntitlements,
		TotalDeductions:   breakdown.TotalDeductions,
		NetSalary:         breakdown.NetSalary,
	})
}

// parsePeriodPath разбирает хвост пути вида {year}/{month}
func parsePeriodPath(tail string) (int, string, bool) {
	parts := strings.SplitN(strings.Trim(tail, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, "", false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", false
	}
	return year, parts[1], true
}
