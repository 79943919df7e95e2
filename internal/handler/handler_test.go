package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/payroll-portal-api/internal/auth"
	"github.com/payroll-portal-api/internal/domain"
	"github.com/payroll-portal-api/internal/dto"
	"github.com/payroll-portal-api/internal/handler"
	"github.com/payroll-portal-api/internal/middleware"
	"github.com/payroll-portal-api/internal/payroll"
	"github.com/payroll-portal-api/internal/repository"
	"github.com/payroll-portal-api/internal/service"
)

type mockAuthService struct {
	sessions *auth.SessionStore
	roles    map[string]string
}

func (m *mockAuthService) RequestOTP(_ context.Context, employeeID, phone string) error {
	if employeeID == "101" && phone == "+201001234567" {
		return nil
	}
	return domain.ErrInvalidCredentials
}

func (m *mockAuthService) VerifyOTP(_ context.Context, employeeID, code string) (*auth.Session, error) {
	if code != "123456" {
		return nil, domain.ErrInvalidOTP
	}
	session := m.sessions.Create(employeeID, m.roles[employeeID])
	return &session, nil
}

func (m *mockAuthService) LoginWithToken(_ context.Context, _ string) (*auth.Session, error) {
	return nil, domain.ErrIdentityLoginDisabled
}

func (m *mockAuthService) Logout(token string) {
	m.sessions.Delete(token)
}

type mockEmployeeService struct{}

func (m *mockEmployeeService) List(_ context.Context) ([]domain.Employee, error) {
	return []domain.Employee{
		{EmployeeID: "101", EmployeeName: "أحمد علي", Role: domain.RoleAdmin},
		{EmployeeID: "102", EmployeeName: "منى سمير", Role: domain.RoleEmployee},
	}, nil
}

func (m *mockEmployeeService) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	if id != "101" {
		return nil, domain.ErrEmployeeNotFound
	}
	return &domain.Employee{EmployeeID: "101"}, nil
}

type mockPayslipService struct{}

func (m *mockPayslipService) Overview(_ context.Context) ([]service.YearPeriods, error) {
	return []service.YearPeriods{{Year: 2024, Months: []string{"February", "January"}}}, nil
}

func (m *mockPayslipService) PeriodDetails(_ context.Context, year int, month string) (*service.PeriodDetails, error) {
	if year != 2024 || month != "January" {
		return nil, domain.ErrPayslipNotFound
	}
	return &service.PeriodDetails{
		Summary: repository.PeriodSummary{TotalEmployees: 2, TotalNetSalary: 10250.50},
		Payslips: []domain.Payslip{
			{EmployeeID: "101", EmployeeName: "أحمد علي", NetSalary: "4250.50"},
			{EmployeeID: "102", EmployeeName: "منى سمير", NetSalary: "6000"},
		},
	}, nil
}

func (m *mockPayslipService) MyPeriods(_ context.Context, employeeID string) ([]service.YearPeriods, error) {
	if employeeID != "102" {
		return nil, nil
	}
	return []service.YearPeriods{{Year: 2024, Months: []string{"January"}}}, nil
}

func (m *mockPayslipService) Detail(_ context.Context, _ string, year int, month string) (*payroll.Breakdown, error) {
	if year != 2024 || month != "January" {
		return nil, domain.ErrPayslipNotFound
	}
	breakdown := payroll.Present(map[string]string{
		"TotalEntitlements": "5000.00",
		"TotalDeductions":   "-750.00",
		"BasicSalary":       "5000.00",
	})
	return &breakdown, nil
}

type mockImportService struct {
	processed int
	err       error
}

func (m *mockImportService) Import(_ context.Context, _ io.Reader, _ int, _ string) (int, error) {
	return m.processed, m.err
}

func newTestServer(t *testing.T, importSvc service.ImportService) (*httptest.Server, *auth.SessionStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := auth.NewSessionStore(time.Hour)

	if importSvc == nil {
		importSvc = &mockImportService{processed: 2}
	}
	authSvc := &mockAuthService{
		sessions: sessions,
		roles:    map[string]string{"101": domain.RoleAdmin, "102": domain.RoleEmployee},
	}

	authH := handler.NewAuthHandler(authSvc, logger)
	portalH := handler.NewPortalHandler(&mockEmployeeService{}, &mockPayslipService{}, importSvc, logger)

	router := handler.NewRouter(authH, portalH, sessions, logger)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)

	return server, sessions
}

func loginAs(sessions *auth.SessionStore, employeeID, role string) *http.Cookie {
	session := sessions.Create(employeeID, role)
	return &http.Cookie{Name: middleware.SessionCookie, Value: session.Token}
}

func doJSON(t *testing.T, method, url, body string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodGet, server.URL+"/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequestOTP(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/auth/otp/request",
		`{"employee_id":"101","phone_number":"+201001234567"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	// неверная пара не раскрывает, что именно не совпало
	resp = doJSON(t, http.MethodPost, server.URL+"/auth/otp/request",
		`{"employee_id":"101","phone_number":"+200000000000"}`, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/auth/otp/request", `{"employee_id":"101"}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing phone, got %d", resp.StatusCode)
	}
}

func TestVerifyOTP(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/auth/otp/verify",
		`{"employee_id":"101","code":"123456"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var login dto.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if login.EmployeeID != "101" || login.Role != domain.RoleAdmin {
		t.Errorf("unexpected login response: %+v", login)
	}

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	// выданная сессия сразу открывает защищённые маршруты
	authed := doJSON(t, http.MethodGet, server.URL+"/employees", "", sessionCookie)
	if authed.StatusCode != http.StatusOK {
		t.Errorf("expected 200 with session cookie, got %d", authed.StatusCode)
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/auth/otp/verify",
		`{"employee_id":"101","code":"000000"}`, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}

	// код не по формату отбрасывается до сервиса
	resp = doJSON(t, http.MethodPost, server.URL+"/auth/otp/verify",
		`{"employee_id":"101","code":"12"}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTokenLogin_Disabled(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/auth/token", `{"id_token":"some-token"}`, nil)
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("expected 501, got %d", resp.StatusCode)
	}
}

func TestLogout(t *testing.T) {
	server, sessions := newTestServer(t, nil)
	cookie := loginAs(sessions, "102", domain.RoleEmployee)

	resp := doJSON(t, http.MethodPost, server.URL+"/auth/logout", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie && c.MaxAge >= 0 {
			t.Error("expected session cookie cleared")
		}
	}

	// сессия завершена на сервере, а не только в cookie
	after := doJSON(t, http.MethodGet, server.URL+"/my/payslips", "", cookie)
	if after.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", after.StatusCode)
	}
}

func TestAdminRoutes_Authz(t *testing.T) {
	server, sessions := newTestServer(t, nil)

	adminRoutes := []string{"/employees", "/payslips", "/payslips/2024/January"}

	for _, route := range adminRoutes {
		resp := doJSON(t, http.MethodGet, server.URL+route, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s without session: expected 401, got %d", route, resp.StatusCode)
		}
	}

	employee := loginAs(sessions, "102", domain.RoleEmployee)
	for _, route := range adminRoutes {
		resp := doJSON(t, http.MethodGet, server.URL+route, "", employee)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s as employee: expected 403, got %d", route, resp.StatusCode)
		}
	}

	admin := loginAs(sessions, "101", domain.RoleAdmin)
	for _, route := range adminRoutes {
		resp := doJSON(t, http.MethodGet, server.URL+route, "", admin)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s as admin: expected 200, got %d", route, resp.StatusCode)
		}
	}
}

func TestPeriodDetails(t *testing.T) {
	server, sessions := newTestServer(t, nil)
	admin := loginAs(sessions, "101", domain.RoleAdmin)

	resp := doJSON(t, http.MethodGet, server.URL+"/payslips/2024/January", "", admin)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var details dto.PeriodDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if details.Summary.TotalEmployees != 2 {
		t.Errorf("expected 2 employees in summary, got %d", details.Summary.TotalEmployees)
	}
	if len(details.Payslips) != 2 {
		t.Errorf("expected 2 payslip rows, got %d", len(details.Payslips))
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/payslips/2024/March", "", admin)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown period, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/payslips/notayear/January", "", admin)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for malformed year, got %d", resp.StatusCode)
	}
}

func TestMyPayslips(t *testing.T) {
	server, sessions := newTestServer(t, nil)
	employee := loginAs(sessions, "102", domain.RoleEmployee)

	resp := doJSON(t, http.MethodGet, server.URL+"/my/payslips", "", employee)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var periods []service.YearPeriods
	if err := json.NewDecoder(resp.Body).Decode(&periods); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(periods) != 1 || periods[0].Year != 2024 {
		t.Errorf("unexpected periods: %+v", periods)
	}
}

func TestMyPayslipDetail(t *testing.T) {
	server, sessions := newTestServer(t, nil)
	employee := loginAs(sessions, "102", domain.RoleEmployee)

	resp := doJSON(t, http.MethodGet, server.URL+"/my/payslips/2024/January", "", employee)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var detail dto.PayslipDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !detail.NetSalary.Equal(detail.TotalEntitlements.Add(detail.TotalDeductions)) {
		t.Errorf("net %s must equal entitlements %s plus deductions %s",
			detail.NetSalary, detail.TotalEntitlements, detail.TotalDeductions)
	}
	if len(detail.Entitlements) == 0 {
		t.Error("expected entitlement buckets")
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/my/payslips/2023/December", "", employee)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing payslip, got %d", resp.StatusCode)
	}
}

func uploadRequest(t *testing.T, url, filename, year, month string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("payslip_file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("workbook bytes"))
	}
	writer.WriteField("pay_year", year)
	writer.WriteField("pay_month", month)
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url+"/payslips/upload", &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	server, sessions := newTestServer(t, &mockImportService{processed: 7})
	admin := loginAs(sessions, "101", domain.RoleAdmin)

	req := uploadRequest(t, server.URL, "salaries.xlsx", "2024", "January")
	req.AddCookie(admin)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var upload dto.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if upload.Processed != 7 {
		t.Errorf("expected 7 processed rows, got %d", upload.Processed)
	}
}

func TestUpload_Validation(t *testing.T) {
	server, sessions := newTestServer(t, nil)
	admin := loginAs(sessions, "101", domain.RoleAdmin)

	tests := []struct {
		name     string
		filename string
		year     string
		month    string
	}{
		{"missing file", "", "2024", "January"},
		{"wrong extension", "salaries.csv", "2024", "January"},
		{"bad year", "salaries.xlsx", "notayear", "January"},
		{"missing month", "salaries.xlsx", "2024", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := uploadRequest(t, server.URL, tt.filename, tt.year, tt.month)
			req.AddCookie(admin)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("do request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestUpload_CaseInsensitiveExtension(t *testing.T) {
	server, sessions := newTestServer(t, &mockImportService{processed: 1})
	admin := loginAs(sessions, "101", domain.RoleAdmin)

	req := uploadRequest(t, server.URL, "SALARIES.XLSX", "2024", "January")
	req.AddCookie(admin)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for uppercase extension, got %d", resp.StatusCode)
	}
}
