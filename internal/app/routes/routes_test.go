package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/controllers"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/app/repositories/memory"
	"github.com/yigit/messdesk/internal/app/services"
	"github.com/yigit/messdesk/internal/middleware"
	"github.com/yigit/messdesk/internal/pkg/auth"
	"github.com/yigit/messdesk/internal/pkg/metrics"
	"github.com/yigit/messdesk/internal/pkg/validation"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinValidators(); err != nil {
		panic(err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
		Kind string `json:"kind"`
	} `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	svc    *services.Services
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	m := metrics.New()
	svc := services.New(repositories.NewMemoryRepositories(store), services.Options{
		Hasher:  auth.NewPasswordHasher(bcrypt.MinCost),
		JWT:     jwt,
		Metrics: m,
		Logger:  zerolog.Nop(),
	})

	router := gin.New()
	SetupRouter(router, Handlers{
		Auth:         controllers.NewAuthController(svc.Auth, zerolog.Nop()),
		Users:        controllers.NewUserController(svc.Directory, zerolog.Nop()),
		Assignments:  controllers.NewAssignmentController(svc.Assignments, zerolog.Nop()),
		Complaints:   controllers.NewComplaintController(svc.Complaints, zerolog.Nop()),
		MenuRequests: controllers.NewMenuRequestController(svc.MenuRequests, zerolog.Nop()),
		Health:       controllers.NewHealthController(store, "memory"),
		Metrics:      m.Handler(),
	}, middleware.NewAuthMiddleware(jwt))

	return &testAPI{t: t, router: router, svc: svc}
}

func (a *testAPI) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	if status != http.StatusOK {
		a.t.Fatalf("login %s: status %d", email, status)
	}
	var resp struct {
		Token struct {
			AccessToken string `json:"accessToken"`
		} `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil || resp.Token.AccessToken == "" {
		a.t.Fatalf("login %s: no token in %s", email, env.Data)
	}
	return resp.Token.AccessToken
}

func (a *testAPI) createAccount(account services.NewAccount) int64 {
	a.t.Helper()
	id, err := a.svc.Directory.CreateUser(context.Background(), account)
	if err != nil {
		a.t.Fatalf("create %s: %v", account.Email, err)
	}
	return id
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func TestComplaintLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	api.createAccount(services.NewAccount{Role: models.RoleAdmin, Email: "admin@campus.edu", Password: "admin-pass"})
	api.createAccount(services.NewAccount{
		Role: models.RoleSupervisor, Email: "menon@campus.edu", Password: "super-pass",
		Name: "R. Menon", SupervisorID: "SUP-004",
	})

	status, env := api.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "asha@campus.edu", "password": "student-pass", "name": "Asha Rao",
		"collegeId": "2024CS017", "mobileNo": "9876543210", "gender": "female", "batch": "2024CS",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d", status)
	}
	registered := decode[struct {
		Profile models.Profile `json:"profile"`
	}](t, env.Data)
	studentID := registered.Profile.User.ID

	admin := api.login("admin@campus.edu", "admin-pass")
	supervisor := api.login("menon@campus.edu", "super-pass")
	student := api.login("asha@campus.edu", "student-pass")

	// a student without a mess cannot file
	if status, _ := api.do(http.MethodPost, "/api/v1/complaints", student, gin.H{"category": "Hygiene", "description": "Plates were not washed"}); status != http.StatusBadRequest {
		t.Fatalf("unassigned student filed with status %d", status)
	}

	if status, _ := api.do(http.MethodPut, "/api/v1/assignments/students/"+itoa(studentID), admin, gin.H{"messId": 3}); status != http.StatusOK {
		t.Fatalf("assign student: status %d", status)
	}
	if status, _ := api.do(http.MethodPut, "/api/v1/assignments/supervisors/SUP-004", admin, gin.H{"messId": 3}); status != http.StatusOK {
		t.Fatalf("assign supervisor: status %d", status)
	}

	if status, _ := api.do(http.MethodPost, "/api/v1/complaints", student, gin.H{"messId": 9, "category": "Hygiene", "description": "x"}); status != http.StatusForbidden {
		t.Fatalf("filing against an unassigned mess: status %d", status)
	}

	status, env = api.do(http.MethodPost, "/api/v1/complaints", student, gin.H{"category": "Hygiene", "description": "Plates were not washed"})
	if status != http.StatusCreated {
		t.Fatalf("file complaint: status %d", status)
	}
	filed := decode[struct {
		Complaint models.Complaint `json:"complaint"`
		Route     models.Route     `json:"route"`
	}](t, env.Data)
	if filed.Complaint.MessID != 3 || filed.Complaint.Status != models.StatusNew || !filed.Route.Routable {
		t.Fatalf("unexpected filing result %+v", filed)
	}
	statusPath := "/api/v1/complaints/" + itoa(filed.Complaint.ID) + "/status"

	status, env = api.do(http.MethodPatch, statusPath, student, gin.H{"status": "Forwarded"})
	if status != http.StatusForbidden || env.Error == nil || env.Error.Kind != "PermissionDenied" {
		t.Fatalf("student forwarded: status %d, error %+v", status, env.Error)
	}

	status, env = api.do(http.MethodPatch, statusPath, supervisor, gin.H{"status": "Forwarded", "expectedStatus": "New"})
	if status != http.StatusOK {
		t.Fatalf("supervisor forward: status %d", status)
	}
	if got := decode[models.Complaint](t, env.Data); got.Status != models.StatusForwarded {
		t.Fatalf("status after forward = %s", got.Status)
	}

	// stale expectation
	status, env = api.do(http.MethodPatch, statusPath, supervisor, gin.H{"status": "Resolved", "expectedStatus": "New"})
	if status != http.StatusConflict || env.Error.Kind != "InvalidTransition" {
		t.Fatalf("stale transition: status %d, error %+v", status, env.Error)
	}

	// not an edge
	if status, _ := api.do(http.MethodPatch, statusPath, admin, gin.H{"status": "New"}); status != http.StatusConflict {
		t.Fatalf("backwards transition: status %d", status)
	}

	if status, _ := api.do(http.MethodPatch, statusPath, student, gin.H{"status": "Reraised"}); status != http.StatusOK {
		t.Fatalf("student reraise: status %d", status)
	}
	if status, _ := api.do(http.MethodPatch, statusPath, supervisor, gin.H{"status": "Resolved"}); status != http.StatusOK {
		t.Fatalf("resolve: status %d", status)
	}
	if status, _ := api.do(http.MethodPatch, statusPath, admin, gin.H{"status": "Forwarded"}); status != http.StatusConflict {
		t.Fatalf("resolved complaint moved: status %d", status)
	}

	status, env = api.do(http.MethodGet, "/api/v1/messes/3/complaints", supervisor, nil)
	if status != http.StatusOK {
		t.Fatalf("mess worklist: status %d", status)
	}
	if list := decode[[]models.Complaint](t, env.Data); len(list) != 1 || list[0].Status != models.StatusResolved {
		t.Fatalf("unexpected worklist %+v", list)
	}
	if status, _ := api.do(http.MethodGet, "/api/v1/messes/4/complaints", supervisor, nil); status != http.StatusForbidden {
		t.Fatalf("other mess worklist: status %d", status)
	}
	if status, _ := api.do(http.MethodGet, "/api/v1/messes/3/complaints", student, nil); status != http.StatusForbidden {
		t.Fatalf("student worklist: status %d", status)
	}

	status, env = api.do(http.MethodGet, "/api/v1/complaints/mine", student, nil)
	if status != http.StatusOK || len(decode[[]models.Complaint](t, env.Data)) != 1 {
		t.Fatalf("own complaints: status %d, data %s", status, env.Data)
	}
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	api := newTestAPI(t)
	body := gin.H{
		"email": "asha@campus.edu", "password": "student-pass", "name": "Asha Rao",
		"collegeId": "2024CS017", "mobileNo": "9876543210", "gender": "female", "batch": "2024CS",
	}

	if status, _ := api.do(http.MethodPost, "/api/v1/auth/register", "", body); status != http.StatusCreated {
		t.Fatalf("first register: status %d", status)
	}
	status, env := api.do(http.MethodPost, "/api/v1/auth/register", "", body)
	if status != http.StatusConflict || env.Success || env.Error.Kind != "DuplicateError" {
		t.Fatalf("duplicate register: status %d, error %+v", status, env.Error)
	}

	body["email"] = "other@campus.edu"
	body["collegeId"] = "2024CS018"
	body["mobileNo"] = "call me"
	if status, _ := api.do(http.MethodPost, "/api/v1/auth/register", "", body); status != http.StatusBadRequest {
		t.Fatalf("bad mobile: status %d", status)
	}
}

func TestRouteGuards(t *testing.T) {
	api := newTestAPI(t)
	api.createAccount(services.NewAccount{
		Role: models.RoleStudent, Email: "asha@campus.edu", Password: "student-pass",
		Name: "Asha Rao", CollegeID: "2024CS017",
	})
	api.createAccount(services.NewAccount{Role: models.RoleCoordinator, Email: "coord@campus.edu", Password: "coord-pass"})
	student := api.login("asha@campus.edu", "student-pass")
	coordinator := api.login("coord@campus.edu", "coord-pass")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/complaints/mine", "", nil, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/auth/me", "not-a-jwt", nil, http.StatusUnauthorized},
		{"student lookup", http.MethodGet, "/api/v1/users/lookup?email=asha@campus.edu", student, nil, http.StatusForbidden},
		{"student assigns", http.MethodPut, "/api/v1/assignments/batches/2024CS", student, gin.H{"messId": 3}, http.StatusForbidden},
		{"coordinator deletes", http.MethodDelete, "/api/v1/users/1", coordinator, nil, http.StatusForbidden},
		{"coordinator files", http.MethodPost, "/api/v1/complaints", coordinator, gin.H{"category": "x", "description": "y"}, http.StatusForbidden},
		{"two lookup keys", http.MethodGet, "/api/v1/users/lookup?email=a@b.co&batch=2024CS", coordinator, nil, http.StatusBadRequest},
		{"empty lookup", http.MethodGet, "/api/v1/users/lookup?batch=1999XX", coordinator, nil, http.StatusOK},
		{"batch without students", http.MethodPut, "/api/v1/assignments/batches/1999XX", coordinator, gin.H{"messId": 3}, http.StatusNotFound},
		{"missing messId", http.MethodPut, "/api/v1/assignments/batches/2024CS", coordinator, gin.H{}, http.StatusBadRequest},
		{"me", http.MethodGet, "/api/v1/auth/me", student, nil, http.StatusOK},
		{"health", http.MethodGet, "/api/v1/health", "", nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := api.do(tc.method, tc.path, tc.token, tc.body)
			if status != tc.want {
				t.Errorf("status %d, want %d", status, tc.want)
			}
		})
	}
}

func TestEmptyLookupIsNotAnError(t *testing.T) {
	api := newTestAPI(t)
	api.createAccount(services.NewAccount{Role: models.RoleAdmin, Email: "admin@campus.edu", Password: "admin-pass"})
	admin := api.login("admin@campus.edu", "admin-pass")

	status, env := api.do(http.MethodGet, "/api/v1/users/lookup?collegeId=NOPE-1", admin, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status %d, success %v", status, env.Success)
	}
	got := decode[struct {
		Found    bool              `json:"found"`
		Count    int               `json:"count"`
		Profiles []json.RawMessage `json:"profiles"`
	}](t, env.Data)
	if got.Found || got.Count != 0 || got.Profiles == nil {
		t.Errorf("unexpected lookup result %+v", got)
	}
}

func TestMenuRequestsOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	api.createAccount(services.NewAccount{
		Role: models.RoleSupervisor, Email: "menon@campus.edu", Password: "super-pass",
		Name: "R. Menon", SupervisorID: "SUP-004",
	})
	api.createAccount(services.NewAccount{Role: models.RoleDirector, Email: "dir@campus.edu", Password: "director-pass"})
	if _, err := api.svc.Assignments.AssignSupervisorMess(context.Background(), "SUP-004", int64Ptr(3)); err != nil {
		t.Fatal(err)
	}
	supervisor := api.login("menon@campus.edu", "super-pass")
	director := api.login("dir@campus.edu", "director-pass")

	proposal := gin.H{"date": "2024-08-14", "currentMenu": "Rajma chawal", "proposedMenu": "Chole chawal", "reason": "Repeated"}
	status, env := api.do(http.MethodPost, "/api/v1/menu-requests", supervisor, proposal)
	if status != http.StatusCreated {
		t.Fatalf("create: status %d", status)
	}
	created := decode[models.MenuChangeRequest](t, env.Data)
	if created.MessID != 3 {
		t.Errorf("request filed against mess %d", created.MessID)
	}

	proposal["date"] = "14/08/2024"
	if status, _ := api.do(http.MethodPost, "/api/v1/menu-requests", supervisor, proposal); status != http.StatusBadRequest {
		t.Errorf("bad date: status %d", status)
	}
	if status, _ := api.do(http.MethodPost, "/api/v1/menu-requests", director, proposal); status != http.StatusForbidden {
		t.Errorf("director proposed: status %d", status)
	}

	status, env = api.do(http.MethodGet, "/api/v1/menu-requests?messId=3", director, nil)
	if status != http.StatusOK || len(decode[[]models.MenuChangeRequest](t, env.Data)) != 1 {
		t.Fatalf("list: status %d, data %s", status, env.Data)
	}

	path := "/api/v1/menu-requests/" + itoa(created.ID)
	if status, _ := api.do(http.MethodDelete, path, director, nil); status != http.StatusOK {
		t.Fatalf("delete: status %d", status)
	}
	if status, _ := api.do(http.MethodGet, path, director, nil); status != http.StatusNotFound {
		t.Errorf("deleted request still readable: status %d", status)
	}
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func int64Ptr(v int64) *int64 { return &v }
