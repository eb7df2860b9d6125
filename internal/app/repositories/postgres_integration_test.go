//go:build integration

package repositories_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yigit/messdesk/internal/app/migrations"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/config"
	"github.com/yigit/messdesk/internal/db"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

func startPostgres(t *testing.T) *repositories.Repositories {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "messdesk",
				"POSTGRES_PASSWORD": "messdesk",
				"POSTGRES_DB":       "messdesk",
			},
			// the server restarts once after initdb
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.Host = host
	cfg.Database.Port = port.Port()
	cfg.Database.User = "messdesk"
	cfg.Database.Password = "messdesk"
	cfg.Database.DBName = "messdesk"
	cfg.Database.SSLMode = "disable"
	cfg.Database.MaxOpenConns = 8
	cfg.Database.ConnMaxLifetime = "1h"

	pg, err := db.NewPostgresDB(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pg.Close)

	if err := migrations.NewMigrator(pg.Pool).MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repositories.NewRepositories(pg)
}

func TestPostgresRepositories(t *testing.T) {
	repos := startPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC()

	newStudent := func(email, collegeID, batch string) int64 {
		t.Helper()
		id, err := repos.Users.CreateAccount(ctx,
			&models.User{RoleType: models.RoleStudent, Email: email, Credential: "hash"},
			&models.Student{Name: "Student " + collegeID, CollegeID: collegeID, Gender: "female", Batch: batch},
			nil)
		if err != nil {
			t.Fatalf("create %s: %v", email, err)
		}
		return id
	}

	first := newStudent("a@campus.edu", "2024CS001", "2024CS")
	second := newStudent("b@campus.edu", "2024CS002", "2024CS")
	newStudent("c@campus.edu", "2023ME001", "2023ME")
	if second <= first {
		t.Fatalf("ids not monotonic: %d then %d", first, second)
	}

	t.Run("duplicates leave nothing behind", func(t *testing.T) {
		_, err := repos.Users.CreateAccount(ctx,
			&models.User{RoleType: models.RoleStudent, Email: "a@campus.edu", Credential: "hash"},
			&models.Student{Name: "Dup", CollegeID: "2024CS099", Batch: "2024CS"}, nil)
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			t.Fatalf("duplicate email: %v", err)
		}
		_, err = repos.Users.CreateAccount(ctx,
			&models.User{RoleType: models.RoleStudent, Email: "fresh@campus.edu", Credential: "hash"},
			&models.Student{Name: "Dup", CollegeID: "2024CS001", Batch: "2024CS"}, nil)
		if !errors.Is(err, apperrors.ErrCollegeIDExists) {
			t.Fatalf("duplicate college id: %v", err)
		}
		if exists, _ := repos.Users.EmailExists(ctx, "fresh@campus.edu"); exists {
			t.Error("user row written despite duplicate college id")
		}
	})

	t.Run("batch assignment", func(t *testing.T) {
		result, err := repos.Students.SetBatchMess(ctx, "2024CS", 3, now)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Updated) != 2 || !result.Complete() {
			t.Fatalf("unexpected result %+v", result)
		}
		other, err := repos.Students.FindStudentsByBatch(ctx, "2023ME")
		if err != nil || len(other) != 1 || other[0].MessID != nil {
			t.Fatalf("other batch touched: %+v, %v", other, err)
		}
	})

	t.Run("compare and set has one winner", func(t *testing.T) {
		c := &models.Complaint{StudentID: first, MessID: 3, Category: "Hygiene", Description: "Plates", Status: models.StatusNew}
		if err := repos.Complaints.CreateComplaint(ctx, c); err != nil {
			t.Fatal(err)
		}

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repos.Complaints.CompareAndSetStatus(ctx, c.ID, models.StatusNew, models.StatusForwarded, time.Now())
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				} else if !errors.Is(err, apperrors.ErrInvalidTransition) {
					t.Errorf("loser error: %v", err)
				}
			}()
		}
		wg.Wait()
		if wins != 1 {
			t.Fatalf("%d writers won", wins)
		}

		if _, err := repos.Complaints.CompareAndSetStatus(ctx, 9999, models.StatusNew, models.StatusForwarded, now); !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("missing complaint: %v", err)
		}

		var seen int
		for complaint, err := range repos.Complaints.ComplaintsByMess(ctx, 3) {
			if err != nil {
				t.Fatal(err)
			}
			if complaint.Status != models.StatusForwarded {
				t.Errorf("status %s", complaint.Status)
			}
			seen++
		}
		if seen != 1 {
			t.Errorf("saw %d complaints", seen)
		}
	})

	t.Run("menu requests", func(t *testing.T) {
		r := &models.MenuChangeRequest{MessID: 3, Date: "2024-08-14", CurrentMenu: "Rajma", ProposedMenu: "Chole", Reason: "Variety", CreatedBy: first}
		if err := repos.MenuRequests.CreateMenuRequest(ctx, r); err != nil {
			t.Fatal(err)
		}
		mess := int64(3)
		list, err := repos.MenuRequests.ListMenuRequests(ctx, &mess)
		if err != nil || len(list) != 1 || list[0].Date != "2024-08-14" {
			t.Fatalf("list: %+v, %v", list, err)
		}
		if err := repos.MenuRequests.DeleteMenuRequest(ctx, r.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := repos.MenuRequests.GetMenuRequestByID(ctx, r.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("deleted request: %v", err)
		}
	})

	t.Run("delete cascades to profile", func(t *testing.T) {
		result, err := repos.Users.DeleteUser(ctx, second)
		if err != nil {
			t.Fatal(err)
		}
		if !result.StudentDeleted {
			t.Errorf("student profile not reported deleted: %+v", result)
		}
		if _, err := repos.Students.GetStudentByUserID(ctx, second); !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("student profile survived: %v", err)
		}
	})
}
