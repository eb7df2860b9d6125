package repositories

import (
	"context"
	"iter"
	"time"

	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories/memory"
	"github.com/yigit/messdesk/internal/app/repositories/user"
	"github.com/yigit/messdesk/internal/db"
)

// UserStore persists users and creates accounts together with their role profile.
type UserStore interface {
	// CreateAccount inserts the user and, when given, its student or supervisor profile as one unit.
	// Duplicate email, college ID or supervisor ID is rejected before anything is written.
	CreateAccount(ctx context.Context, u *models.User, student *models.Student, supervisor *models.Supervisor) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// DeleteUser removes the user and cascades to its profile records.
	DeleteUser(ctx context.Context, id int64) (*models.DeleteResult, error)
}

// StudentStore persists student profiles and their mess assignment.
type StudentStore interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	CollegeIDExists(ctx context.Context, collegeID string) (bool, error)
	FindStudentsByCollegeID(ctx context.Context, collegeID string) ([]models.Student, error)
	FindStudentsByBatch(ctx context.Context, batch string) ([]models.Student, error)
	FindStudentsByGender(ctx context.Context, gender string) ([]models.Student, error)
	UpdateStudentProfile(ctx context.Context, s *models.Student) error
	// SetStudentMess writes messID for one student and returns the written row; a vanished row
	// yields a not-found error.
	SetStudentMess(ctx context.Context, userID, messID int64, at time.Time) (*models.Student, error)
	// SetBatchMess writes messID on every student of the batch and reports per-student outcomes.
	// Observers never see a partially applied batch.
	SetBatchMess(ctx context.Context, batch string, messID int64, at time.Time) (*models.BatchAssignmentResult, error)
}

// SupervisorStore persists supervisor profiles.
type SupervisorStore interface {
	GetSupervisorByUserID(ctx context.Context, userID int64) (*models.Supervisor, error)
	GetSupervisorByID(ctx context.Context, supervisorID string) (*models.Supervisor, error)
	SupervisorIDExists(ctx context.Context, supervisorID string) (bool, error)
	ListSupervisorsByMess(ctx context.Context, messID int64) ([]models.Supervisor, error)
	UpdateSupervisorProfile(ctx context.Context, s *models.Supervisor) error
	SetSupervisorMess(ctx context.Context, supervisorID string, messID int64, at time.Time) error
}

// ComplaintStore persists complaints.
type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error)
	// ComplaintsByMess yields a fresh snapshot of the mess's complaints each time it is ranged over.
	ComplaintsByMess(ctx context.Context, messID int64) iter.Seq2[models.Complaint, error]
	ListComplaintsByStudent(ctx context.Context, studentID int64) ([]models.Complaint, error)
	// CompareAndSetStatus writes to only if the stored status still equals from.
	CompareAndSetStatus(ctx context.Context, id int64, from, to models.ComplaintStatus, at time.Time) (*models.Complaint, error)
}

// MenuRequestStore persists menu change requests.
type MenuRequestStore interface {
	CreateMenuRequest(ctx context.Context, r *models.MenuChangeRequest) error
	GetMenuRequestByID(ctx context.Context, id int64) (*models.MenuChangeRequest, error)
	ListMenuRequests(ctx context.Context, messID *int64) ([]models.MenuChangeRequest, error)
	DeleteMenuRequest(ctx context.Context, id int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Users        UserStore
	Students     StudentStore
	Supervisors  SupervisorStore
	Complaints   ComplaintStore
	MenuRequests MenuRequestStore
}

// NewRepositories initializes the postgres-backed repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		Users:        user.NewRepository(pg),
		Students:     user.NewStudentRepository(pg),
		Supervisors:  user.NewSupervisorRepository(pg),
		Complaints:   NewComplaintRepository(pg),
		MenuRequests: NewMenuRequestRepository(pg),
	}
}

// NewMemoryRepositories backs every repository with one in-memory store
func NewMemoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Users:        store,
		Students:     store,
		Supervisors:  store,
		Complaints:   store,
		MenuRequests: store,
	}
}

var (
	_ UserStore        = (*user.Repository)(nil)
	_ StudentStore     = (*user.StudentRepository)(nil)
	_ SupervisorStore  = (*user.SupervisorRepository)(nil)
	_ ComplaintStore   = (*ComplaintRepository)(nil)
	_ MenuRequestStore = (*MenuRequestRepository)(nil)

	_ UserStore        = (*memory.Store)(nil)
	_ StudentStore     = (*memory.Store)(nil)
	_ SupervisorStore  = (*memory.Store)(nil)
	_ ComplaintStore   = (*memory.Store)(nil)
	_ MenuRequestStore = (*memory.Store)(nil)
)
