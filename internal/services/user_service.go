package services

import (
	"context"
	"fmt"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// UserService covers account administration: suspension, reinstatement and
// platform role changes. All of these feed straight into permission
// resolution, so each one invalidates the user's cached decisions.
type UserService struct {
	db       *gorm.DB
	userRepo *repositories.UserRepositoryGORM
	perms    *PermissionService
	audit    *AuditService
}

func NewUserService(db *gorm.DB, userRepo *repositories.UserRepositoryGORM, perms *PermissionService, audit *AuditService) *UserService {
	return &UserService{
		db:       db,
		userRepo: userRepo,
		perms:    perms,
		audit:    audit,
	}
}

// GetUser returns a user with memberships preloaded.
func (svc *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := svc.userRepo.GetUserWithMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

// Suspend freezes an account. Suspension denies every permission check,
// super admins included.
func (svc *UserService) Suspend(ctx context.Context, actorID, userID string) error {
	user, err := svc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	before := *user

	if err := svc.userRepo.SetStatus(ctx, userID, string(constants.UserStatusSuspended)); err != nil {
		return err
	}
	user.Status = constants.UserStatusSuspended

	svc.perms.InvalidateUser(userID)
	svc.audit.Record(ctx, &actorID, "user.suspended", "user", userID, before, user)

	logging.Warn("user suspended",
		"user_id", userID,
		"actor_id", actorID,
	)

	return nil
}

// Reinstate returns a suspended account to active.
func (svc *UserService) Reinstate(ctx context.Context, actorID, userID string) error {
	user, err := svc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}
	if user.Status != constants.UserStatusSuspended {
		return fmt.Errorf("user is not suspended")
	}

	before := *user

	if err := svc.userRepo.SetStatus(ctx, userID, string(constants.UserStatusActive)); err != nil {
		return err
	}
	user.Status = constants.UserStatusActive

	svc.perms.InvalidateUser(userID)
	svc.audit.Record(ctx, &actorID, "user.reinstated", "user", userID, before, user)

	return nil
}

// SetPlatformRole changes a user's platform-wide role.
func (svc *UserService) SetPlatformRole(ctx context.Context, actorID, userID string, role constants.PlatformRole) error {
	if !role.IsValid() {
		return fmt.Errorf("unknown platform role: %s", role)
	}

	user, err := svc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	before := *user

	err = svc.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("platform_role", role).Error
	if err != nil {
		return fmt.Errorf("failed to update platform role: %w", err)
	}
	user.PlatformRole = role

	svc.perms.InvalidateUser(userID)
	svc.audit.Record(ctx, &actorID, "user.platform_role_changed", "user", userID, before, user)

	logging.Info("platform role changed",
		"user_id", userID,
		"role", string(role),
		"actor_id", actorID,
	)

	return nil
}
