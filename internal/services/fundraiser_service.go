package services

import (
	"context"
	"fmt"
	"time"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/models/dtos"
	models "grassroots/warchest/internal/models/gorm"
)

// FundraiserService manages fundraiser lifecycle. Drafts can exist under any
// active organization, but publishing is gated on verification.
type FundraiserService struct {
	fundraiserRepo *repositories.FundraiserRepository
	orgRepo        *repositories.OrgRepository
	audit          *AuditService
}

func NewFundraiserService(
	fundraiserRepo *repositories.FundraiserRepository,
	orgRepo *repositories.OrgRepository,
	audit *AuditService,
) *FundraiserService {
	return &FundraiserService{
		fundraiserRepo: fundraiserRepo,
		orgRepo:        orgRepo,
		audit:          audit,
	}
}

// CreateFundraiser makes an unpublished draft.
func (svc *FundraiserService) CreateFundraiser(ctx context.Context, actorID string, req *dtos.CreateFundraiserRequest) (*models.Fundraiser, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("fundraiser title is required")
	}
	if req.GoalAmountCents <= 0 {
		return nil, fmt.Errorf("fundraiser goal must be positive")
	}

	org, err := svc.orgRepo.GetByID(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}
	if !org.IsActive {
		return nil, fmt.Errorf("organization is not active")
	}

	fundraiser := &models.Fundraiser{
		OrgID:           req.OrgID,
		Title:           req.Title,
		Description:     req.Description,
		GoalAmountCents: req.GoalAmountCents,
		CreatedBy:       actorID,
	}

	if err := svc.fundraiserRepo.Create(ctx, fundraiser); err != nil {
		return nil, err
	}

	svc.audit.Record(ctx, &actorID, "fundraiser.created", "fundraiser", fundraiser.ID, nil, fundraiser)

	logging.Info("fundraiser created",
		"fundraiser_id", fundraiser.ID,
		"org_id", req.OrgID,
		"created_by", actorID,
	)

	return fundraiser, nil
}

// Publish makes a fundraiser visible and able to accept donations. Only
// verified organizations may go live.
func (svc *FundraiserService) Publish(ctx context.Context, fundraiserID, actorID string) (*models.Fundraiser, error) {
	fundraiser, err := svc.fundraiserRepo.GetByID(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}

	if fundraiser.IsPublished {
		return fundraiser, nil
	}

	org, err := svc.orgRepo.GetByID(ctx, fundraiser.OrgID)
	if err != nil {
		return nil, err
	}
	if org.VerificationStatus != constants.VerificationVerified {
		return nil, fmt.Errorf(constants.StatusOrgNotVerified)
	}

	before := *fundraiser

	now := time.Now()
	fundraiser.IsPublished = true
	fundraiser.PublishedAt = &now

	if err := svc.fundraiserRepo.Update(ctx, fundraiser); err != nil {
		return nil, err
	}

	svc.audit.Record(ctx, &actorID, "fundraiser.published", "fundraiser", fundraiser.ID, before, fundraiser)

	logging.Info("fundraiser published",
		"fundraiser_id", fundraiser.ID,
		"org_id", fundraiser.OrgID,
	)

	return fundraiser, nil
}

// Unpublish takes a fundraiser off the air without deleting its history.
func (svc *FundraiserService) Unpublish(ctx context.Context, fundraiserID, actorID string) (*models.Fundraiser, error) {
	fundraiser, err := svc.fundraiserRepo.GetByID(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}

	if !fundraiser.IsPublished {
		return fundraiser, nil
	}

	before := *fundraiser
	fundraiser.IsPublished = false

	if err := svc.fundraiserRepo.Update(ctx, fundraiser); err != nil {
		return nil, err
	}

	svc.audit.Record(ctx, &actorID, "fundraiser.unpublished", "fundraiser", fundraiser.ID, before, fundraiser)

	return fundraiser, nil
}

// Edit updates the mutable fields of a draft or live fundraiser. The running
// total is derived and never editable.
func (svc *FundraiserService) Edit(ctx context.Context, fundraiserID, actorID string, req *dtos.CreateFundraiserRequest) (*models.Fundraiser, error) {
	fundraiser, err := svc.fundraiserRepo.GetByID(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}

	before := *fundraiser

	if req.Title != "" {
		fundraiser.Title = req.Title
	}
	if req.Description != "" {
		fundraiser.Description = req.Description
	}
	if req.GoalAmountCents > 0 {
		fundraiser.GoalAmountCents = req.GoalAmountCents
	}

	if err := svc.fundraiserRepo.Update(ctx, fundraiser); err != nil {
		return nil, err
	}

	svc.audit.Record(ctx, &actorID, "fundraiser.edited", "fundraiser", fundraiser.ID, before, fundraiser)

	return fundraiser, nil
}

// ListByOrg returns all of an organization's fundraisers.
func (svc *FundraiserService) ListByOrg(ctx context.Context, orgID string) ([]models.Fundraiser, error) {
	return svc.fundraiserRepo.GetAllByOrgID(ctx, orgID)
}
