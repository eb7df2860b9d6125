package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/auth"
	"github.com/yigit/messdesk/internal/pkg/validation"
)

// NewAccount carries everything createUser needs. Student fields apply to student-type roles,
// SupervisorID to supervisors.
type NewAccount struct {
	Role         models.RoleType
	Email        string
	Password     string
	Name         string
	MobileNo     string
	CollegeID    string
	Gender       string
	Batch        string
	SupervisorID string
}

// LookupResult is the outcome of a directory lookup. No match is reported with Found=false.
type LookupResult struct {
	Found    bool             `json:"found"`
	Profiles []models.Profile `json:"profiles"`
}

// DirectoryService manages users and their role profiles
type DirectoryService struct {
	users       repositories.UserStore
	students    repositories.StudentStore
	supervisors repositories.SupervisorStore
	hasher      auth.PasswordHasher
	logger      zerolog.Logger
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(
	users repositories.UserStore,
	students repositories.StudentStore,
	supervisors repositories.SupervisorStore,
	hasher auth.PasswordHasher,
	logger zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{
		users:       users,
		students:    students,
		supervisors: supervisors,
		hasher:      hasher,
		logger:      logger,
	}
}

// validateAccount checks the request before anything touches the store
func validateAccount(a *NewAccount) error {
	if !a.Role.Valid() {
		return apperrors.Validation("role %q is not recognised", a.Role)
	}
	if !validation.ValidEmail(a.Email) {
		return apperrors.Validation("email must be a valid email address")
	}
	if len(a.Password) < validation.PasswordMinLength {
		return apperrors.Validation("password must be at least %d characters long", validation.PasswordMinLength)
	}
	if a.MobileNo != "" && !validation.ValidMobile(a.MobileNo) {
		return apperrors.Validation("mobileNo is not a valid phone number")
	}

	switch {
	case a.Role.HasStudentProfile():
		if !validation.ValidName(a.Name) {
			return apperrors.Validation("name is required")
		}
		if !validation.ValidCollegeID(a.CollegeID) {
			return apperrors.Validation("collegeId is required and may only contain letters, digits and dashes")
		}
	case a.Role == models.RoleSupervisor:
		if !validation.ValidName(a.Name) {
			return apperrors.Validation("name is required")
		}
		if !validation.ValidSupervisorID(a.SupervisorID) {
			return apperrors.Validation("supervisorId is required")
		}
	}
	return nil
}

// CreateUser creates a user together with its role profile and returns the assigned user ID
func (s *DirectoryService) CreateUser(ctx context.Context, a NewAccount) (int64, error) {
	a.Email = validation.NormalizeEmail(a.Email)
	a.Name = strings.TrimSpace(a.Name)
	a.CollegeID = strings.TrimSpace(a.CollegeID)
	a.SupervisorID = strings.TrimSpace(a.SupervisorID)
	if err := validateAccount(&a); err != nil {
		return 0, err
	}

	credential, err := s.hasher.Hash(a.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing credential")
		return 0, apperrors.Store("hash credential", err)
	}

	user := &models.User{RoleType: a.Role, Email: a.Email, Credential: credential}

	var student *models.Student
	var supervisor *models.Supervisor
	switch {
	case a.Role.HasStudentProfile():
		student = &models.Student{
			Name:      a.Name,
			CollegeID: a.CollegeID,
			MobileNo:  a.MobileNo,
			Gender:    strings.TrimSpace(a.Gender),
			Batch:     strings.TrimSpace(a.Batch),
		}
	case a.Role == models.RoleSupervisor:
		supervisor = &models.Supervisor{
			SupervisorID: a.SupervisorID,
			Name:         a.Name,
			MobileNo:     a.MobileNo,
		}
	}

	id, err := s.users.CreateAccount(ctx, user, student, supervisor)
	if err != nil {
		if apperrors.Kind(err) == apperrors.KindDuplicate {
			s.logger.Warn().Str("email", a.Email).Msg("Duplicate account rejected")
		}
		return 0, err
	}

	s.logger.Info().Int64("userID", id).Str("role", string(a.Role)).Msg("User created")
	return id, nil
}

// DeleteUser removes a user and its role profile
func (s *DirectoryService) DeleteUser(ctx context.Context, userID int64) (*models.DeleteResult, error) {
	if userID <= 0 {
		return nil, apperrors.Validation("userId must be positive")
	}
	return s.users.DeleteUser(ctx, userID)
}

// UpdateProfile merges the supplied fields into the user's role profile
func (s *DirectoryService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.Profile, error) {
	update = models.ProfileUpdate{
		Name:     strings.TrimSpace(update.Name),
		MobileNo: strings.TrimSpace(update.MobileNo),
		Gender:   strings.TrimSpace(update.Gender),
		Batch:    strings.TrimSpace(update.Batch),
	}
	if update.IsEmpty() {
		return nil, apperrors.Validation("at least one profile field must be supplied")
	}
	if update.Name != "" && !validation.ValidName(update.Name) {
		return nil, apperrors.Validation("name must be between %d and %d characters", validation.NameMinLength, validation.NameMaxLength)
	}
	if update.MobileNo != "" && !validation.ValidMobile(update.MobileNo) {
		return nil, apperrors.Validation("mobileNo is not a valid phone number")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case user.RoleType.HasStudentProfile():
		student, err := s.students.GetStudentByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		update.ApplyToStudent(student)
		if err := s.students.UpdateStudentProfile(ctx, student); err != nil {
			return nil, err
		}
		return &models.Profile{User: *user, Student: student}, nil

	case user.RoleType == models.RoleSupervisor:
		if update.Name == "" && update.MobileNo == "" {
			return nil, apperrors.Validation("supervisor profiles only accept name and mobileNo")
		}
		supervisor, err := s.supervisors.GetSupervisorByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		update.ApplyToSupervisor(supervisor)
		if err := s.supervisors.UpdateSupervisorProfile(ctx, supervisor); err != nil {
			return nil, err
		}
		return &models.Profile{User: *user, Supervisor: supervisor}, nil
	}

	return nil, apperrors.Validation("role %s has no editable profile", user.RoleType)
}

// GetProfile returns the user with its role profile
func (s *DirectoryService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, user)
}

func (s *DirectoryService) profileOf(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile := &models.Profile{User: *user}
	switch {
	case user.RoleType.HasStudentProfile():
		student, err := s.students.GetStudentByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		profile.Student = student
	case user.RoleType == models.RoleSupervisor:
		supervisor, err := s.supervisors.GetSupervisorByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		profile.Supervisor = supervisor
	}
	return profile, nil
}

// Recipient returns the address and display name used to mail a user
func (s *DirectoryService) Recipient(ctx context.Context, userID int64) (string, string, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", "", err
	}
	name := profile.User.Email
	switch {
	case profile.Student != nil:
		name = profile.Student.Name
	case profile.Supervisor != nil:
		name = profile.Supervisor.Name
	}
	return profile.User.Email, name, nil
}

// LookupByUserID finds a user by ID
func (s *DirectoryService) LookupByUserID(ctx context.Context, userID int64) (*LookupResult, error) {
	if userID <= 0 {
		return nil, apperrors.Validation("userId must be positive")
	}
	user, err := s.users.GetUserByID(ctx, userID)
	return s.singleResult(ctx, user, err)
}

// LookupByEmail finds a user by email
func (s *DirectoryService) LookupByEmail(ctx context.Context, email string) (*LookupResult, error) {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	return s.singleResult(ctx, user, err)
}

func (s *DirectoryService) singleResult(ctx context.Context, user *models.User, err error) (*LookupResult, error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return &LookupResult{Found: false, Profiles: []models.Profile{}}, nil
		}
		return nil, err
	}
	profile, err := s.profileOf(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LookupResult{Found: true, Profiles: []models.Profile{*profile}}, nil
}

// LookupByCollegeID finds students by college identifier
func (s *DirectoryService) LookupByCollegeID(ctx context.Context, collegeID string) (*LookupResult, error) {
	return s.lookupStudents(ctx, "collegeId", collegeID, s.students.FindStudentsByCollegeID)
}

// LookupByBatch finds students of a batch
func (s *DirectoryService) LookupByBatch(ctx context.Context, batch string) (*LookupResult, error) {
	return s.lookupStudents(ctx, "batch", batch, s.students.FindStudentsByBatch)
}

// LookupByGender finds students of a gender
func (s *DirectoryService) LookupByGender(ctx context.Context, gender string) (*LookupResult, error) {
	return s.lookupStudents(ctx, "gender", gender, s.students.FindStudentsByGender)
}

func (s *DirectoryService) lookupStudents(
	ctx context.Context,
	field, key string,
	find func(context.Context, string) ([]models.Student, error),
) (*LookupResult, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.Validation("%s is required", field)
	}

	students, err := find(ctx, key)
	if err != nil {
		return nil, err
	}

	result := &LookupResult{Found: len(students) > 0, Profiles: make([]models.Profile, 0, len(students))}
	for i := range students {
		user, err := s.users.GetUserByID(ctx, students[i].UserID)
		if err != nil {
			// deleted between the two reads
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				continue
			}
			return nil, err
		}
		result.Profiles = append(result.Profiles, models.Profile{User: *user, Student: &students[i]})
	}
	result.Found = len(result.Profiles) > 0
	return result, nil
}
