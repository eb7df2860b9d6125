// Package services holds the business logic of the mess desk.
//
// Services defined in this package:
//   - DirectoryService: users, role profiles and lookups
//   - AuthService: registration, login and the current session's profile
//   - AssignmentService: binds students and supervisors to messes
//   - ComplaintService: complaint creation, routing and the status machine
//   - MenuRequestService: the menu change request workflow
package services

import (
	"github.com/rs/zerolog"
	appauth "github.com/yigit/messdesk/internal/app/auth"
	"github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/pkg/auth"
	"github.com/yigit/messdesk/internal/pkg/metrics"
	"github.com/yigit/messdesk/internal/pkg/notify"
)

// Services holds all the service instances
type Services struct {
	Directory    *DirectoryService
	Auth         *AuthService
	Assignments  *AssignmentService
	Complaints   *ComplaintService
	MenuRequests *MenuRequestService
	Authz        *appauth.AuthorizationService
}

// Options carries the collaborators shared by the services
type Options struct {
	Hasher     auth.PasswordHasher
	JWT        *auth.JWTService
	Dispatcher notify.Dispatcher
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
}

// New wires every service on top of repos
func New(repos *repositories.Repositories, opts Options) *Services {
	authz := appauth.NewAuthorizationService(repos.Students, repos.Supervisors)
	directory := NewDirectoryService(repos.Users, repos.Students, repos.Supervisors, opts.Hasher,
		opts.Logger.With().Str("service", "directory").Logger())

	return &Services{
		Directory: directory,
		Auth: NewAuthService(directory, repos.Users, opts.Hasher, opts.JWT,
			opts.Logger.With().Str("service", "auth").Logger()),
		Assignments: NewAssignmentService(repos.Students, repos.Supervisors, opts.Metrics,
			opts.Logger.With().Str("service", "assignment").Logger()),
		Complaints: NewComplaintService(repos.Complaints, repos.Supervisors, authz, opts.Dispatcher, opts.Metrics,
			opts.Logger.With().Str("service", "complaint").Logger()),
		MenuRequests: NewMenuRequestService(repos.MenuRequests, authz,
			opts.Logger.With().Str("service", "menu_request").Logger()),
		Authz: authz,
	}
}
