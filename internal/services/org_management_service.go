package services

import (
	"context"
	"fmt"

	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/models/dtos"
	models "grassroots/warchest/internal/models/gorm"
)

// OrgManagementService handles membership administration and the
// verification decisions only platform staff can make.
type OrgManagementService struct {
	orgRepo        *repositories.OrgRepository
	membershipRepo *repositories.MembershipRepository
	userRepo       *repositories.UserRepositoryGORM
	perms          *PermissionService
	audit          *AuditService
}

func NewOrgManagementService(
	orgRepo *repositories.OrgRepository,
	membershipRepo *repositories.MembershipRepository,
	userRepo *repositories.UserRepositoryGORM,
	perms *PermissionService,
	audit *AuditService,
) *OrgManagementService {
	return &OrgManagementService{
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		perms:          perms,
		audit:          audit,
	}
}

// AddMember creates an active membership. A user holds at most one role per
// organization; re-adding an existing member is an error, not an upsert.
func (svc *OrgManagementService) AddMember(ctx context.Context, actorID, orgID string, req *dtos.AddMemberRequest) (*models.OrgMembership, error) {
	role := constants.OrgRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown org role: %s", req.Role)
	}

	user, err := svc.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	existing, err := svc.membershipRepo.GetByUserAndOrg(ctx, req.UserID, orgID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf(constants.StatusMembershipExists)
	}

	membership := &models.OrgMembership{
		UserID:   req.UserID,
		OrgID:    orgID,
		Role:     role,
		IsActive: true,
	}

	if err := svc.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	svc.perms.InvalidateUser(req.UserID)
	svc.audit.Record(ctx, &actorID, "org.member_added", "org_membership", membership.ID, nil, membership)

	logging.Info("org member added",
		"org_id", orgID,
		"user_id", req.UserID,
		"role", req.Role,
	)

	return membership, nil
}

// SetMemberRole changes an existing member's role.
func (svc *OrgManagementService) SetMemberRole(ctx context.Context, actorID, orgID string, req *dtos.SetMemberRoleRequest) (*models.OrgMembership, error) {
	role := constants.OrgRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown org role: %s", req.Role)
	}

	membership, err := svc.membershipRepo.GetByUserAndOrg(ctx, req.UserID, orgID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("membership not found")
	}

	before := *membership
	membership.Role = role

	if err := svc.membershipRepo.Update(ctx, membership); err != nil {
		return nil, err
	}

	svc.perms.InvalidateUser(req.UserID)
	svc.audit.Record(ctx, &actorID, "org.member_role_changed", "org_membership", membership.ID, before, membership)

	return membership, nil
}

// RemoveMember deactivates the membership. The row stays for history; the
// user just stops resolving org permissions through it.
func (svc *OrgManagementService) RemoveMember(ctx context.Context, actorID, orgID, userID string) error {
	membership, err := svc.membershipRepo.GetByUserAndOrg(ctx, userID, orgID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("membership not found")
	}

	if err := svc.membershipRepo.Deactivate(ctx, membership.ID); err != nil {
		return err
	}

	svc.perms.InvalidateUser(userID)
	svc.audit.Record(ctx, &actorID, "org.member_removed", "org_membership", membership.ID, membership, nil)

	return nil
}

// ListMembers returns an organization's memberships, active and not.
func (svc *OrgManagementService) ListMembers(ctx context.Context, orgID string) ([]models.OrgMembership, error) {
	return svc.membershipRepo.GetAllByOrgID(ctx, orgID)
}

// SetVerificationStatus is the platform-staff decision that unlocks
// publishing and disbursements for an organization.
func (svc *OrgManagementService) SetVerificationStatus(ctx context.Context, actorID, orgID string, status constants.VerificationStatus) (*models.Organization, error) {
	switch status {
	case constants.VerificationPending, constants.VerificationVerified, constants.VerificationRejected:
	default:
		return nil, fmt.Errorf("unknown verification status: %s", status)
	}

	org, err := svc.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	before := *org

	if err := svc.orgRepo.SetVerificationStatus(ctx, orgID, status); err != nil {
		return nil, err
	}
	org.VerificationStatus = status

	svc.audit.Record(ctx, &actorID, "org.verification_changed", "organization", orgID, before, org)

	logging.Info("organization verification changed",
		"org_id", orgID,
		"status", string(status),
		"actor_id", actorID,
	)

	return org, nil
}

// GetOrganization fetches one organization by id.
func (svc *OrgManagementService) GetOrganization(ctx context.Context, orgID string) (*models.Organization, error) {
	return svc.orgRepo.GetByID(ctx, orgID)
}
