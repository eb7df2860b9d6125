package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/app/models/dto"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
	"github.com/yigit/messdesk/internal/pkg/auth"
	"github.com/yigit/messdesk/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	directory  *DirectoryService
	users      repositories.UserStore
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	directory *DirectoryService,
	users repositories.UserStore,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		directory:  directory,
		users:      users,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterStudent creates a student account and signs the new user in
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.AuthResponse, error) {
	userID, err := s.directory.CreateUser(ctx, NewAccount{
		Role:      models.RoleStudent,
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		MobileNo:  req.MobileNo,
		CollegeID: req.CollegeID,
		Gender:    req.Gender,
		Batch:     req.Batch,
	})
	if err != nil {
		return nil, err
	}

	profile, err := s.directory.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Student registered")
	return s.issue(profile)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := validation.NormalizeEmail(req.Email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Debug().Str("email", email).Msg("Login attempt for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(user.Credential, req.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.directory.profileOf(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issue(profile)
}

// Me returns the profile of the signed-in user
func (s *AuthService) Me(ctx context.Context, session models.Session) (*models.Profile, error) {
	return s.directory.GetProfile(ctx, session.UserID)
}

func (s *AuthService) issue(profile *models.Profile) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(&profile.User)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", profile.User.ID).Msg("Error generating access token")
		return nil, apperrors.Store("issue token", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		Profile: profile,
	}, nil
}
