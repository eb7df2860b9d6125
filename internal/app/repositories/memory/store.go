// Package memory provides an in-memory implementation of the repository
// interfaces used for tests and ephemeral environments.
package memory

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

// FaultFunc returns a non-nil error to make the named operation fail
type FaultFunc func(op string) error

// Store keeps every table in maps guarded by one RWMutex.
// Identifiers are assigned monotonically and never reused.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	fault FaultFunc

	nextUserID      int64
	nextComplaintID int64
	nextMenuID      int64

	users        map[int64]models.User
	emails       map[string]int64
	students     map[int64]models.Student
	collegeIDs   map[string]int64
	supervisors  map[string]models.Supervisor
	supervisorOf map[int64]string
	complaints   map[int64]models.Complaint
	menuRequests map[int64]models.MenuChangeRequest
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the clock used for created_at timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithFault injects failures into store operations
func WithFault(fn FaultFunc) Option {
	return func(s *Store) { s.fault = fn }
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:          func() time.Time { return time.Now().UTC() },
		users:        make(map[int64]models.User),
		emails:       make(map[string]int64),
		students:     make(map[int64]models.Student),
		collegeIDs:   make(map[string]int64),
		supervisors:  make(map[string]models.Supervisor),
		supervisorOf: make(map[int64]string),
		complaints:   make(map[int64]models.Complaint),
		menuRequests: make(map[int64]models.MenuChangeRequest),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) check(op string) error {
	if s.fault == nil {
		return nil
	}
	return apperrors.Store(op, s.fault(op))
}

// Ping reports the injected fault, if any
func (s *Store) Ping(_ context.Context) error {
	return s.check("ping")
}

func cloneID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStudent(st models.Student) models.Student {
	st.MessID = cloneID(st.MessID)
	return st
}

func cloneSupervisor(sv models.Supervisor) models.Supervisor {
	sv.MessID = cloneID(sv.MessID)
	return sv
}

func cloneComplaint(c models.Complaint) models.Complaint {
	c.Image = cloneString(c.Image)
	return c
}

// Users

// CreateAccount inserts the user and its optional profile atomically
func (s *Store) CreateAccount(_ context.Context, u *models.User, student *models.Student, supervisor *models.Supervisor) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("create account"); err != nil {
		return 0, err
	}
	if _, ok := s.emails[u.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	if student != nil {
		if _, ok := s.collegeIDs[student.CollegeID]; ok {
			return 0, apperrors.ErrCollegeIDExists
		}
	}
	if supervisor != nil {
		if _, ok := s.supervisors[supervisor.SupervisorID]; ok {
			return 0, apperrors.ErrSupervisorIDExists
		}
	}

	now := s.now()
	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = now
	s.users[u.ID] = *u
	s.emails[u.Email] = u.ID

	if student != nil {
		student.UserID = u.ID
		student.UpdatedAt = now
		s.students[u.ID] = cloneStudent(*student)
		s.collegeIDs[student.CollegeID] = u.ID
	}
	if supervisor != nil {
		supervisor.UserID = u.ID
		supervisor.UpdatedAt = now
		s.supervisors[supervisor.SupervisorID] = cloneSupervisor(*supervisor)
		s.supervisorOf[u.ID] = supervisor.SupervisorID
	}
	return u.ID, nil
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get user"); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get user"); err != nil {
		return nil, err
	}
	id, ok := s.emails[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

// EmailExists reports whether email is taken
func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("check email"); err != nil {
		return false, err
	}
	_, ok := s.emails[email]
	return ok, nil
}

// DeleteUser removes the user together with its profile records
func (s *Store) DeleteUser(_ context.Context, id int64) (*models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("delete user"); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	result := &models.DeleteResult{UserID: id}
	if st, ok := s.students[id]; ok {
		delete(s.collegeIDs, st.CollegeID)
		delete(s.students, id)
		result.StudentDeleted = true
	}
	if supID, ok := s.supervisorOf[id]; ok {
		delete(s.supervisors, supID)
		delete(s.supervisorOf, id)
		result.SupervisorDeleted = true
	}
	delete(s.emails, u.Email)
	delete(s.users, id)
	return result, nil
}

// Students

// GetStudentByUserID retrieves a student by user ID
func (s *Store) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get student"); err != nil {
		return nil, err
	}
	st, ok := s.students[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	st = cloneStudent(st)
	return &st, nil
}

// CollegeIDExists reports whether collegeID is taken
func (s *Store) CollegeIDExists(_ context.Context, collegeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("check college ID"); err != nil {
		return false, err
	}
	_, ok := s.collegeIDs[collegeID]
	return ok, nil
}

// FindStudentsByCollegeID returns the students holding collegeID
func (s *Store) FindStudentsByCollegeID(_ context.Context, collegeID string) ([]models.Student, error) {
	return s.findStudents(func(st models.Student) bool { return st.CollegeID == collegeID })
}

// FindStudentsByBatch returns the students of a batch
func (s *Store) FindStudentsByBatch(_ context.Context, batch string) ([]models.Student, error) {
	return s.findStudents(func(st models.Student) bool { return st.Batch == batch })
}

// FindStudentsByGender returns the students of a gender
func (s *Store) FindStudentsByGender(_ context.Context, gender string) ([]models.Student, error) {
	return s.findStudents(func(st models.Student) bool { return st.Gender == gender })
}

func (s *Store) findStudents(match func(models.Student) bool) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("find students"); err != nil {
		return nil, err
	}
	return s.matchStudentsLocked(match), nil
}

func (s *Store) matchStudentsLocked(match func(models.Student) bool) []models.Student {
	out := []models.Student{}
	for _, st := range s.students {
		if match(st) {
			out = append(out, cloneStudent(st))
		}
	}
	slices.SortFunc(out, func(a, b models.Student) int { return cmp.Compare(a.UserID, b.UserID) })
	return out
}

// UpdateStudentProfile writes the editable profile fields of st
func (s *Store) UpdateStudentProfile(_ context.Context, st *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("update student"); err != nil {
		return err
	}
	cur, ok := s.students[st.UserID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	cur.Name = st.Name
	cur.MobileNo = st.MobileNo
	cur.Gender = st.Gender
	cur.Batch = st.Batch
	cur.UpdatedAt = s.now()
	s.students[st.UserID] = cur
	st.UpdatedAt = cur.UpdatedAt
	return nil
}

// SetStudentMess assigns a single student to a mess and returns the row as written
func (s *Store) SetStudentMess(_ context.Context, userID, messID int64, at time.Time) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("assign student mess"); err != nil {
		return nil, err
	}
	if !s.setStudentMessLocked(userID, messID, at) {
		return nil, apperrors.ErrStudentNotFound
	}
	st := cloneStudent(s.students[userID])
	return &st, nil
}

func (s *Store) setStudentMessLocked(userID, messID int64, at time.Time) bool {
	st, ok := s.students[userID]
	if !ok {
		return false
	}
	st.MessID = &messID
	st.UpdatedAt = at
	s.students[userID] = st
	return true
}

// SetBatchMess assigns every student of batch while holding the write lock,
// so readers observe either none or all of the batch updated.
func (s *Store) SetBatchMess(_ context.Context, batch string, messID int64, at time.Time) (*models.BatchAssignmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("assign batch mess"); err != nil {
		return nil, err
	}

	result := &models.BatchAssignmentResult{
		Batch:   batch,
		MessID:  messID,
		Updated: []int64{},
		Failed:  []models.AssignmentFailure{},
	}
	for _, st := range s.matchStudentsLocked(func(st models.Student) bool { return st.Batch == batch }) {
		if err := s.check("assign student mess"); err != nil {
			result.Failed = append(result.Failed, models.AssignmentFailure{
				UserID:  st.UserID,
				Kind:    string(apperrors.Kind(err)),
				Message: err.Error(),
			})
			continue
		}
		s.setStudentMessLocked(st.UserID, messID, at)
		result.Updated = append(result.Updated, st.UserID)
	}
	return result, nil
}

// Supervisors

// GetSupervisorByUserID retrieves a supervisor by user ID
func (s *Store) GetSupervisorByUserID(_ context.Context, userID int64) (*models.Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get supervisor"); err != nil {
		return nil, err
	}
	supID, ok := s.supervisorOf[userID]
	if !ok {
		return nil, apperrors.ErrSupervisorNotFound
	}
	sv := cloneSupervisor(s.supervisors[supID])
	return &sv, nil
}

// GetSupervisorByID retrieves a supervisor by supervisor identifier
func (s *Store) GetSupervisorByID(_ context.Context, supervisorID string) (*models.Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get supervisor"); err != nil {
		return nil, err
	}
	sv, ok := s.supervisors[supervisorID]
	if !ok {
		return nil, apperrors.ErrSupervisorNotFound
	}
	sv = cloneSupervisor(sv)
	return &sv, nil
}

// SupervisorIDExists reports whether supervisorID is taken
func (s *Store) SupervisorIDExists(_ context.Context, supervisorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("check supervisor ID"); err != nil {
		return false, err
	}
	_, ok := s.supervisors[supervisorID]
	return ok, nil
}

// ListSupervisorsByMess returns the supervisors assigned to messID
func (s *Store) ListSupervisorsByMess(_ context.Context, messID int64) ([]models.Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("list supervisors"); err != nil {
		return nil, err
	}
	out := []models.Supervisor{}
	for _, sv := range s.supervisors {
		if sv.MessID != nil && *sv.MessID == messID {
			out = append(out, cloneSupervisor(sv))
		}
	}
	slices.SortFunc(out, func(a, b models.Supervisor) int { return cmp.Compare(a.SupervisorID, b.SupervisorID) })
	return out, nil
}

// UpdateSupervisorProfile writes the editable profile fields of sv
func (s *Store) UpdateSupervisorProfile(_ context.Context, sv *models.Supervisor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("update supervisor"); err != nil {
		return err
	}
	supID, ok := s.supervisorOf[sv.UserID]
	if !ok {
		return apperrors.ErrSupervisorNotFound
	}
	cur := s.supervisors[supID]
	cur.Name = sv.Name
	cur.MobileNo = sv.MobileNo
	cur.UpdatedAt = s.now()
	s.supervisors[supID] = cur
	sv.UpdatedAt = cur.UpdatedAt
	return nil
}

// SetSupervisorMess assigns a supervisor to a mess
func (s *Store) SetSupervisorMess(_ context.Context, supervisorID string, messID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("assign supervisor mess"); err != nil {
		return err
	}
	sv, ok := s.supervisors[supervisorID]
	if !ok {
		return apperrors.ErrSupervisorNotFound
	}
	sv.MessID = &messID
	sv.UpdatedAt = at
	s.supervisors[supervisorID] = sv
	return nil
}

// Complaints

// CreateComplaint stores c and fills in its ID and timestamps
func (s *Store) CreateComplaint(_ context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("create complaint"); err != nil {
		return err
	}
	s.nextComplaintID++
	c.ID = s.nextComplaintID
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.complaints[c.ID] = cloneComplaint(*c)
	return nil
}

// GetComplaintByID retrieves a complaint by ID
func (s *Store) GetComplaintByID(_ context.Context, id int64) (*models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get complaint"); err != nil {
		return nil, err
	}
	c, ok := s.complaints[id]
	if !ok {
		return nil, apperrors.ErrComplaintNotFound
	}
	c = cloneComplaint(c)
	return &c, nil
}

// ComplaintsByMess yields a snapshot of the mess's complaints in creation order.
// Each range takes a new snapshot.
func (s *Store) ComplaintsByMess(_ context.Context, messID int64) iter.Seq2[models.Complaint, error] {
	return func(yield func(models.Complaint, error) bool) {
		snapshot, err := s.selectComplaints(func(c models.Complaint) bool { return c.MessID == messID })
		if err != nil {
			yield(models.Complaint{}, err)
			return
		}
		for _, c := range snapshot {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// ListComplaintsByStudent returns every complaint filed by a student, newest first
func (s *Store) ListComplaintsByStudent(_ context.Context, studentID int64) ([]models.Complaint, error) {
	out, err := s.selectComplaints(func(c models.Complaint) bool { return c.StudentID == studentID })
	if err != nil {
		return nil, err
	}
	slices.Reverse(out)
	return out, nil
}

func (s *Store) selectComplaints(match func(models.Complaint) bool) ([]models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("list complaints"); err != nil {
		return nil, err
	}
	out := []models.Complaint{}
	for _, c := range s.complaints {
		if match(c) {
			out = append(out, cloneComplaint(c))
		}
	}
	slices.SortFunc(out, func(a, b models.Complaint) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// CompareAndSetStatus writes to only while the stored status equals from
func (s *Store) CompareAndSetStatus(_ context.Context, id int64, from, to models.ComplaintStatus, at time.Time) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("update complaint status"); err != nil {
		return nil, err
	}
	c, ok := s.complaints[id]
	if !ok {
		return nil, apperrors.ErrComplaintNotFound
	}
	if c.Status != from {
		return nil, apperrors.InvalidTransition("complaint %d is %s, expected %s", id, c.Status, from)
	}
	c.Status = to
	c.UpdatedAt = at
	s.complaints[id] = c
	c = cloneComplaint(c)
	return &c, nil
}

// Menu requests

// CreateMenuRequest stores m and fills in its ID and creation time
func (s *Store) CreateMenuRequest(_ context.Context, m *models.MenuChangeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("create menu request"); err != nil {
		return err
	}
	s.nextMenuID++
	m.ID = s.nextMenuID
	m.CreatedAt = s.now()
	s.menuRequests[m.ID] = *m
	return nil
}

// GetMenuRequestByID retrieves a menu request by ID
func (s *Store) GetMenuRequestByID(_ context.Context, id int64) (*models.MenuChangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("get menu request"); err != nil {
		return nil, err
	}
	m, ok := s.menuRequests[id]
	if !ok {
		return nil, apperrors.ErrMenuRequestNotFound
	}
	return &m, nil
}

// ListMenuRequests returns menu requests, optionally limited to one mess, oldest first
func (s *Store) ListMenuRequests(_ context.Context, messID *int64) ([]models.MenuChangeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check("list menu requests"); err != nil {
		return nil, err
	}
	out := []models.MenuChangeRequest{}
	for _, m := range s.menuRequests {
		if messID == nil || m.MessID == *messID {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b models.MenuChangeRequest) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// DeleteMenuRequest removes a menu request
func (s *Store) DeleteMenuRequest(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check("delete menu request"); err != nil {
		return err
	}
	if _, ok := s.menuRequests[id]; !ok {
		return apperrors.ErrMenuRequestNotFound
	}
	delete(s.menuRequests, id)
	return nil
}
