package services

import (
	"context"
	"fmt"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/models/dtos"
	models "grassroots/warchest/internal/models/gorm"

	"gorm.io/gorm"
)

// RegistrationService onboards users and organizations. Responses carry the
// step list so callers can see exactly which check failed.
type RegistrationService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewRegistrationService(db *gorm.DB, audit *AuditService) *RegistrationService {
	return &RegistrationService{db: db, audit: audit}
}

// RegisterUser creates a donor account in pending_verification state.
func (svc *RegistrationService) RegisterUser(ctx context.Context, req *dtos.RegisterUserRequest) (*dtos.RegisterUserResponse, error) {
	var steps []dtos.RegistrationStep

	// STEP 1: Check the email is not already registered
	steps = append(steps, dtos.RegistrationStep{
		Name:    "duplicate_check",
		Status:  true,
		Message: "Email not already registered",
	})

	var existing models.User
	err := svc.db.WithContext(ctx).
		Where("email = ?", req.Email).
		First(&existing).Error

	if err == nil {
		steps[0].Status = false
		steps[0].Message = constants.StatusEmailTaken
		return &dtos.RegisterUserResponse{
			Email:  req.Email,
			Status: false,
			Steps:  steps,
		}, fmt.Errorf(constants.StatusEmailTaken)
	}

	if err != gorm.ErrRecordNotFound {
		steps[0].Status = false
		steps[0].Message = "Database error during duplicate check"
		return &dtos.RegisterUserResponse{
			Email:  req.Email,
			Status: false,
			Steps:  steps,
		}, fmt.Errorf("database error: %w", err)
	}

	// STEP 2: Insert the user
	steps = append(steps, dtos.RegistrationStep{
		Name:    "database_insert",
		Status:  true,
		Message: constants.StatusRegistered,
	})

	user := models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PlatformRole: constants.PlatformRoleDonor,
		Status:       constants.UserStatusPendingVerification,
	}

	if err := svc.db.WithContext(ctx).Create(&user).Error; err != nil {
		steps[1].Status = false
		steps[1].Message = constants.StatusInsertFailed
		return &dtos.RegisterUserResponse{
			Email:  req.Email,
			Status: false,
			Steps:  steps,
		}, fmt.Errorf("failed to insert user: %w", err)
	}

	svc.audit.Record(ctx, nil, "user.registered", "user", user.ID, nil, user)

	logging.Info("user registered",
		"user_id", user.ID,
		"email", req.Email,
	)

	return &dtos.RegisterUserResponse{
		Email:   req.Email,
		UserID:  user.ID,
		Status:  true,
		Message: constants.StatusRegistered,
		Steps:   steps,
	}, nil
}

// CompleteVerification stores the compliance attributes a donor must provide
// before their donations can be itemized, then activates the account.
func (svc *RegistrationService) CompleteVerification(ctx context.Context, userID string, req *dtos.VerifyUserRequest) (*models.User, error) {
	var user models.User
	err := svc.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.Status == constants.UserStatusSuspended {
		return nil, fmt.Errorf(constants.StatusSuspended)
	}

	before := user

	user.AddressLine1 = &req.AddressLine1
	if req.AddressLine2 != "" {
		user.AddressLine2 = &req.AddressLine2
	}
	user.City = &req.City
	user.State = &req.State
	user.PostalCode = &req.PostalCode
	user.Employer = &req.Employer
	user.Occupation = &req.Occupation
	user.IsUSCitizen = req.IsUSCitizen
	user.Status = constants.UserStatusActive

	if err := svc.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	svc.audit.Record(ctx, &userID, "user.verified", "user", user.ID, before, user)

	return &user, nil
}

// RegisterOrganization creates a pending organization and makes the caller
// its owner in one transaction.
func (svc *RegistrationService) RegisterOrganization(ctx context.Context, actorID string, req *dtos.RegisterOrgRequest) (*dtos.RegisterOrgResponse, error) {
	var steps []dtos.RegistrationStep

	// STEP 1: Check the slug is free
	steps = append(steps, dtos.RegistrationStep{
		Name:    "slug_check",
		Status:  true,
		Message: "Slug is available",
	})

	var existing models.Organization
	err := svc.db.WithContext(ctx).
		Where("slug = ?", req.Slug).
		First(&existing).Error

	if err == nil {
		steps[0].Status = false
		steps[0].Message = "Slug already in use"
		return &dtos.RegisterOrgResponse{
			Slug:   req.Slug,
			Status: false,
			Steps:  steps,
		}, fmt.Errorf("slug already in use: %s", req.Slug)
	}

	if err != gorm.ErrRecordNotFound {
		steps[0].Status = false
		steps[0].Message = "Database error during slug check"
		return &dtos.RegisterOrgResponse{
			Slug:   req.Slug,
			Status: false,
			Steps:  steps,
		}, fmt.Errorf("database error: %w", err)
	}

	// STEP 2: Create the organization and the owner membership together
	steps = append(steps, dtos.RegistrationStep{
		Name:    "database_insert",
		Status:  true,
		Message: "Organization registered",
	})

	org := models.Organization{
		Name: req.Name,
		Slug: req.Slug,
	}
	if req.FECCommitteeID != "" {
		org.FECCommitteeID = &req.FECCommitteeID
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		membership := models.OrgMembership{
			UserID:   actorID,
			OrgID:    org.ID,
			Role:     constants.OrgRoleOwner,
			IsActive: true,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		return nil
	})

	if err != nil {
		steps[1].Status = false
		steps[1].Message = constants.StatusInsertFailed
		return &dtos.RegisterOrgResponse{
			Slug:   req.Slug,
			Status: false,
			Steps:  steps,
		}, err
	}

	svc.audit.Record(ctx, &actorID, "org.registered", "organization", org.ID, nil, org)

	logging.Info("organization registered",
		"org_id", org.ID,
		"slug", req.Slug,
		"owner_id", actorID,
	)

	return &dtos.RegisterOrgResponse{
		Slug:    req.Slug,
		OrgID:   org.ID,
		Status:  true,
		Message: "Organization registered, pending verification",
		Steps:   steps,
	}, nil
}
