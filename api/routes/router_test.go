package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/doxacleaning/doxa-backend/internal/auth"
	"github.com/doxacleaning/doxa-backend/internal/customers"
	"github.com/doxacleaning/doxa-backend/internal/jobs"
	"github.com/doxacleaning/doxa-backend/internal/users"
	pkgAuth "github.com/doxacleaning/doxa-backend/pkg/auth"
	"github.com/doxacleaning/doxa-backend/pkg/config"
	"github.com/doxacleaning/doxa-backend/pkg/db"
	"github.com/doxacleaning/doxa-backend/pkg/db/models"
	"github.com/doxacleaning/doxa-backend/pkg/enums"
	"github.com/doxacleaning/doxa-backend/pkg/metrics"
	"github.com/doxacleaning/doxa-backend/pkg/security"
)

type routerFixture struct {
	handler  http.Handler
	cfg      *config.Config
	conn     *gorm.DB
	admin    *models.User
	employee *models.User
	customer *models.Customer
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Customer{}, &models.Job{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		App:      config.AppConfig{Env: "test", Port: "0"},
		JWT:      config.JWTConfig{Secret: "secret", Issuer: "doxa-api", ExpirationMinutes: 60},
		Password: config.PasswordConfig{BcryptCost: 4},
	}

	client := db.NewWithConn(conn)

	hash, err := security.HashPassword("pw123456", cfg.Password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := &models.User{Email: "admin@doxa.com", PasswordHash: hash, Role: enums.RoleAdmin, Name: "Admin", Phone: "555-0001"}
	employee := &models.User{Email: "worker@doxa.com", PasswordHash: hash, Role: enums.RoleEmployee, Name: "Worker", Phone: "555-0002"}
	for _, u := range []*models.User{admin, employee} {
		if err := conn.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	customer := &models.Customer{Name: "Alpine Lodge", StreetAdd1: "12 Pine St", City: "Boise", State: "ID", ZipCode: "83702", Phone: "555-0110"}
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  users.NewRepository(conn),
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{DB: client, PasswordConfig: cfg.Password})
	if err != nil {
		t.Fatalf("register service: %v", err)
	}
	jobsService, err := jobs.NewService(jobs.ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("jobs service: %v", err)
	}
	customersService, err := customers.NewService(customers.ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("customers service: %v", err)
	}

	handler := NewRouter(Deps{
		Config:           cfg,
		Logger:           nil,
		Redis:            nil,
		Metrics:          metrics.NewHTTPMetrics(),
		AuthService:      authService,
		RegisterService:  registerService,
		JobsService:      jobsService,
		CustomersService: customersService,
	})

	return &routerFixture{
		handler:  handler,
		cfg:      cfg,
		conn:     conn,
		admin:    admin,
		employee: employee,
		customer: customer,
	}
}

func (f *routerFixture) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(f.cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func (f *routerFixture) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	f.handler.ServeHTTP(resp, req)
	return resp
}

func dataField(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestHomeAndHealth(t *testing.T) {
	f := newRouterFixture(t)

	resp := f.do(t, http.MethodGet, "/", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("home: expected 200 got %d", resp.Code)
	}
	home := dataField(t, resp)
	if _, ok := home["endpoints"]; !ok {
		t.Fatalf("home missing endpoint map: %v", home)
	}

	resp = f.do(t, http.MethodGet, "/api/health", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("health: expected 200 got %d", resp.Code)
	}
	health := dataField(t, resp)
	if health["status"] != "ok" || health["timestamp"] == nil {
		t.Fatalf("unexpected health payload: %v", health)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	f.do(t, http.MethodGet, "/api/health", "", "")
	resp := f.do(t, http.MethodGet, "/metrics", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "http_requests_total") {
		t.Fatal("expected request counter in exposition")
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	f := newRouterFixture(t)

	payload := `{"email":"new@doxa.com","password":"pw123456","role":"employee","name":"New Hire","phone":"555-0103"}`
	resp := f.do(t, http.MethodPost, "/api/auth/register", "", payload)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	body := dataField(t, resp)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("register payload missing user: %v", body)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash leaked in register response")
	}

	// Same email again keeps the original 400 contract.
	resp = f.do(t, http.MethodPost, "/api/auth/register", "", payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400 got %d", resp.Code)
	}

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"new@doxa.com","password":"pw123456"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d (%s)", resp.Code, resp.Body.String())
	}
	login := dataField(t, resp)
	if login["token"] == "" || login["token"] == nil {
		t.Fatalf("login did not return a token: %v", login)
	}

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"new@doxa.com","password":"wrong-pass"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401 got %d", resp.Code)
	}
}

func TestJobsGuardChain(t *testing.T) {
	f := newRouterFixture(t)

	// No credentials at all.
	resp := f.do(t, http.MethodGet, "/api/jobs", "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	// Garbage token.
	resp = f.do(t, http.MethodGet, "/api/jobs", "garbage", "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	// Authenticated but not admin.
	resp = f.do(t, http.MethodGet, "/api/jobs", f.token(t, f.employee), "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d", resp.Code)
	}

	resp = f.do(t, http.MethodGet, "/api/jobs", f.token(t, f.admin), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.Code)
	}
}

func TestJobsLifecycleOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	adminToken := f.token(t, f.admin)
	employeeToken := f.token(t, f.employee)

	payload := `{"employee_id":"` + f.employee.ID.String() + `","customer_id":"` + f.customer.ID.String() +
		`","status":"pending","scheduled_date":"2026-03-02","scheduled_time":"09:00","estimated_duration":90}`
	resp := f.do(t, http.MethodPost, "/api/jobs", adminToken, payload)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	created := dataField(t, resp)
	jobID, _ := created["id"].(string)
	if jobID == "" {
		t.Fatalf("create returned no id: %v", created)
	}

	// my-jobs: owner passes, another employee's id does not, no selector is 422.
	resp = f.do(t, http.MethodGet, "/api/jobs/my-jobs?employee_id="+f.employee.ID.String(), employeeToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("my-jobs owner: expected 200 got %d", resp.Code)
	}
	resp = f.do(t, http.MethodGet, "/api/jobs/my-jobs?employee_id="+uuid.NewString(), employeeToken, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("my-jobs foreign: expected 403 got %d", resp.Code)
	}
	resp = f.do(t, http.MethodGet, "/api/jobs/my-jobs", employeeToken, "")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("my-jobs no selector: expected 422 got %d", resp.Code)
	}
	resp = f.do(t, http.MethodGet, "/api/jobs/my-jobs?employee_id="+f.employee.ID.String(), adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("my-jobs admin: expected 200 got %d", resp.Code)
	}

	// Patch status only.
	resp = f.do(t, http.MethodPatch, "/api/jobs/"+jobID, adminToken, `{"status":"in-progress"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("patch: expected 200 got %d (%s)", resp.Code, resp.Body.String())
	}
	if patched := dataField(t, resp); patched["status"] != "in-progress" {
		t.Fatalf("patch did not apply: %v", patched)
	}

	// Empty patch set.
	resp = f.do(t, http.MethodPatch, "/api/jobs/"+jobID, adminToken, `{}`)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty patch: expected 422 got %d", resp.Code)
	}

	// Completion is open to any authenticated role.
	resp = f.do(t, http.MethodPatch, "/api/jobs/"+jobID+"/complete", employeeToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("complete: expected 200 got %d (%s)", resp.Code, resp.Body.String())
	}
	completed := dataField(t, resp)
	if completed["status"] != "completed" || completed["completed_at"] == nil {
		t.Fatalf("unexpected completion payload: %v", completed)
	}

	// Delete returns the snapshot; the row is gone afterwards.
	resp = f.do(t, http.MethodDelete, "/api/jobs/"+jobID, adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", resp.Code)
	}
	if snapshot := dataField(t, resp); snapshot["id"] != jobID {
		t.Fatalf("delete snapshot mismatch: %v", snapshot)
	}
	resp = f.do(t, http.MethodDelete, "/api/jobs/"+jobID, adminToken, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404 got %d", resp.Code)
	}
}

func TestCustomersAdminOnly(t *testing.T) {
	f := newRouterFixture(t)

	resp := f.do(t, http.MethodGet, "/api/customers", f.token(t, f.employee), "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d", resp.Code)
	}

	adminToken := f.token(t, f.admin)
	resp = f.do(t, http.MethodPost, "/api/customers", adminToken,
		`{"name":"Maple Clinic","street_add1":"40 Oak Ave","city":"Boise","state":"ID","zip_code":"83702","phone":"555-0111"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create customer: expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	created := dataField(t, resp)
	customerID, _ := created["id"].(string)

	resp = f.do(t, http.MethodGet, "/api/customers/"+customerID, adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get customer: expected 200 got %d", resp.Code)
	}

	resp = f.do(t, http.MethodPatch, "/api/customers/"+customerID, adminToken, `{"phone":"555-0199"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("patch customer: expected 200 got %d", resp.Code)
	}
	if patched := dataField(t, resp); patched["phone"] != "555-0199" {
		t.Fatalf("patch did not apply: %v", patched)
	}

	resp = f.do(t, http.MethodDelete, "/api/customers/"+customerID, adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete customer: expected 200 got %d", resp.Code)
	}
	resp = f.do(t, http.MethodGet, "/api/customers/"+customerID, adminToken, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get deleted customer: expected 404 got %d", resp.Code)
	}
}
