package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/messdesk/internal/app/models"
	appRepos "github.com/yigit/messdesk/internal/app/repositories"
	appServices "github.com/yigit/messdesk/internal/app/services"
	"github.com/yigit/messdesk/internal/pkg/apperrors"
)

// AdminAccount is the account created on first start
type AdminAccount struct {
	Email    string
	Password string
}

// CreateDefaultData creates the default admin account if it doesn't exist.
// Without a configured password nothing is created.
func CreateDefaultData(ctx context.Context, users appRepos.UserStore, directory *appServices.DirectoryService, admin AdminAccount, lgr zerolog.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		lgr.Info().Msg("No default admin configured, skipping seed")
		return nil
	}

	lgr.Info().Str("email", admin.Email).Msg("Checking/Creating default admin account...")
	exists, err := users.EmailExists(ctx, admin.Email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking default admin")
		return err
	}
	if exists {
		lgr.Info().Msg("Default admin already exists")
		return nil
	}

	id, err := directory.CreateUser(ctx, appServices.NewAccount{
		Role:     appModels.RoleAdmin,
		Email:    admin.Email,
		Password: admin.Password,
	})
	if err != nil {
		// another instance may have seeded in between
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Int64("userID", id).Msg("Default admin account created")
	return nil
}
