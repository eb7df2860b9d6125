package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/app/repositories/memory"
	"github.com/yigit/messdesk/internal/pkg/auth"
	"github.com/yigit/messdesk/internal/pkg/metrics"
	"github.com/yigit/messdesk/internal/pkg/notify"
	"golang.org/x/crypto/bcrypt"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (d *recordingDispatcher) Dispatch(e notify.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *recordingDispatcher) Events() []notify.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Event(nil), d.events...)
}

type fixture struct {
	store    *memory.Store
	svc      *Services
	events   *recordingDispatcher
	metrics  *metrics.Metrics
	jwt      *auth.JWTService
	ctx      context.Context
	password string
}

func newFixture(t *testing.T, opts ...memory.Option) *fixture {
	t.Helper()
	store := memory.NewStore(opts...)
	events := &recordingDispatcher{}
	m := metrics.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "messdesk-test",
	})
	svc := New(repositories.NewMemoryRepositories(store), Options{
		Hasher:     auth.NewPasswordHasher(bcrypt.MinCost),
		JWT:        jwtService,
		Dispatcher: events,
		Metrics:    m,
		Logger:     zerolog.Nop(),
	})
	return &fixture{
		store:    store,
		svc:      svc,
		events:   events,
		metrics:  m,
		jwt:      jwtService,
		ctx:      context.Background(),
		password: "s3cret-pass",
	}
}

func (f *fixture) student(t *testing.T, email, collegeID, batch string) int64 {
	t.Helper()
	id, err := f.svc.Directory.CreateUser(f.ctx, NewAccount{
		Role:      models.RoleStudent,
		Email:     email,
		Password:  f.password,
		Name:      "Student " + collegeID,
		CollegeID: collegeID,
		Gender:    "female",
		Batch:     batch,
	})
	if err != nil {
		t.Fatalf("create student %s: %v", email, err)
	}
	return id
}

func (f *fixture) representative(t *testing.T, email, collegeID string, messID int64) int64 {
	t.Helper()
	id, err := f.svc.Directory.CreateUser(f.ctx, NewAccount{
		Role:      models.RoleRepresentative,
		Email:     email,
		Password:  f.password,
		Name:      "Rep " + collegeID,
		CollegeID: collegeID,
		Batch:     "REP",
	})
	if err != nil {
		t.Fatalf("create representative %s: %v", email, err)
	}
	if _, err := f.svc.Assignments.AssignMessByUserID(f.ctx, id, &messID); err != nil {
		t.Fatalf("assign representative: %v", err)
	}
	return id
}

func (f *fixture) supervisor(t *testing.T, email, supervisorID string, messID int64) int64 {
	t.Helper()
	id, err := f.svc.Directory.CreateUser(f.ctx, NewAccount{
		Role:         models.RoleSupervisor,
		Email:        email,
		Password:     f.password,
		Name:         "Supervisor " + supervisorID,
		SupervisorID: supervisorID,
	})
	if err != nil {
		t.Fatalf("create supervisor %s: %v", email, err)
	}
	if messID > 0 {
		if _, err := f.svc.Assignments.AssignSupervisorMess(f.ctx, supervisorID, &messID); err != nil {
			t.Fatalf("assign supervisor: %v", err)
		}
	}
	return id
}

func (f *fixture) staff(t *testing.T, email string, role models.RoleType) int64 {
	t.Helper()
	id, err := f.svc.Directory.CreateUser(f.ctx, NewAccount{Role: role, Email: email, Password: f.password})
	if err != nil {
		t.Fatalf("create %s %s: %v", role, email, err)
	}
	return id
}

func int64Ptr(v int64) *int64 { return &v }

func statusPtr(s models.ComplaintStatus) *models.ComplaintStatus { return &s }
