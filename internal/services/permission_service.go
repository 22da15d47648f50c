package services

import (
	"context"
	"fmt"
	"time"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/metrics"
	"grassroots/warchest/internal/models/dtos"
	models "grassroots/warchest/internal/models/gorm"
)

// decisionCacheTTL bounds how stale a cached permission decision can be.
// Grants and revokes invalidate eagerly, so this only covers role and status
// changes made outside the permission endpoints.
const decisionCacheTTL = 60 * time.Second

// PermissionService resolves whether a user may perform an action. The
// resolution order is fixed: suspension, super admin, per-user override,
// org ownership, org role defaults, platform role defaults, deny.
type PermissionService struct {
	userRepo       *repositories.UserRepositoryGORM
	membershipRepo *repositories.MembershipRepository
	permRepo       *repositories.PermissionRepository
	cache          common.CacheInterface
	metrics        *metrics.MetricsRegistry
	audit          *AuditService
}

func NewPermissionService(
	userRepo *repositories.UserRepositoryGORM,
	membershipRepo *repositories.MembershipRepository,
	permRepo *repositories.PermissionRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	audit *AuditService,
) *PermissionService {
	return &PermissionService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		permRepo:       permRepo,
		cache:          cache,
		metrics:        metricsReg,
		audit:          audit,
	}
}

func decisionCacheKey(userID string, perm constants.Permission, orgID *string) string {
	scope := "global"
	if orgID != nil {
		scope = *orgID
	}
	return fmt.Sprintf("%s%s_%s_%s", constants.CachePrefixPermission, userID, perm, scope)
}

// Resolve answers a single permission question. Decisions are cached per
// (user, permission, scope); anything that changes the inputs must
// invalidate via InvalidateUser.
func (svc *PermissionService) Resolve(ctx context.Context, userID string, perm constants.Permission, orgID *string) (bool, error) {
	if err := perm.Validate(); err != nil {
		return false, err
	}

	key := decisionCacheKey(userID, perm, orgID)
	if val, found := svc.cache.Get(key); found {
		if allowed, ok := val.(bool); ok {
			svc.recordCheck(perm, allowed, true)
			return allowed, nil
		}
	}

	allowed, err := svc.resolve(ctx, userID, perm, orgID)
	if err != nil {
		return false, err
	}

	svc.cache.Set(key, allowed, decisionCacheTTL)
	svc.recordCheck(perm, allowed, false)
	return allowed, nil
}

func (svc *PermissionService) recordCheck(perm constants.Permission, allowed, cacheHit bool) {
	if svc.metrics == nil {
		return
	}
	result := "denied"
	if allowed {
		result = "allowed"
	}
	svc.metrics.PermissionChecksTotal.WithLabelValues(string(perm), result).Inc()
	pattern := string(constants.CachePrefixPermission)
	if cacheHit {
		svc.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
	} else {
		svc.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}
}

func (svc *PermissionService) resolve(ctx context.Context, userID string, perm constants.Permission, orgID *string) (bool, error) {
	user, err := svc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("permission resolve: %w", err)
	}
	if user == nil {
		// Unknown users hold no permissions
		return false, nil
	}

	// Suspension wins over everything, super admin included
	if user.Status == constants.UserStatusSuspended {
		return false, nil
	}

	if user.PlatformRole == constants.PlatformRoleSuperAdmin {
		return true, nil
	}

	// A live per-user override beats all role defaults. Org-scoped rows
	// shadow global ones; the repository orders for that.
	override, err := svc.permRepo.FindOverride(ctx, userID, perm, orgID)
	if err != nil {
		return false, fmt.Errorf("permission resolve: %w", err)
	}
	if override != nil {
		return override.Granted, nil
	}

	if orgID != nil {
		membership, err := svc.membershipRepo.GetByUserAndOrg(ctx, userID, *orgID)
		if err != nil {
			return false, fmt.Errorf("permission resolve: %w", err)
		}
		if membership != nil && membership.IsActive {
			if membership.Role == constants.OrgRoleOwner {
				return true, nil
			}

			granted, err := svc.permRepo.HasOrgRoleGrant(ctx, membership.Role, perm)
			if err != nil {
				return false, fmt.Errorf("permission resolve: %w", err)
			}
			if granted {
				return true, nil
			}
		}
	}

	granted, err := svc.permRepo.HasPlatformRoleGrant(ctx, user.PlatformRole, perm)
	if err != nil {
		return false, fmt.Errorf("permission resolve: %w", err)
	}
	if granted {
		return true, nil
	}

	return false, nil
}

// EffectivePermissions walks the catalog and resolves each entry, giving the
// full set the user holds in the given scope.
func (svc *PermissionService) EffectivePermissions(ctx context.Context, userID string, orgID *string) (*dtos.EffectivePermissionsResponse, error) {
	var granted []string
	for _, perm := range constants.PermissionCatalog {
		allowed, err := svc.Resolve(ctx, userID, perm, orgID)
		if err != nil {
			return nil, err
		}
		if allowed {
			granted = append(granted, string(perm))
		}
	}

	return &dtos.EffectivePermissionsResponse{
		UserID:      userID,
		OrgID:       orgID,
		Permissions: granted,
	}, nil
}

// Grant creates a per-user override. Granted=false records an explicit
// denial, which also shadows role defaults.
func (svc *PermissionService) Grant(ctx context.Context, actorID string, req *dtos.GrantPermissionRequest) (*models.UserPermission, error) {
	perm := constants.Permission(req.Permission)
	if !svc.isKnownPermission(perm) {
		return nil, fmt.Errorf("%s: %s", constants.MsgUnknownPermission, req.Permission)
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("invalid expires_at: %w", err)
		}
		expiresAt = &parsed
	}

	override := &models.UserPermission{
		UserID:     req.UserID,
		Permission: req.Permission,
		OrgID:      req.OrgID,
		Granted:    req.Granted,
		ExpiresAt:  expiresAt,
		GrantedBy:  actorID,
	}

	if err := svc.permRepo.CreateOverride(ctx, override); err != nil {
		return nil, fmt.Errorf("grant permission: %w", err)
	}

	svc.InvalidateUser(req.UserID)
	svc.audit.RecordPermissionChange(ctx, req.UserID, req.Permission, req.OrgID, "granted", actorID)

	logging.Info("permission override created",
		"user_id", req.UserID,
		"permission", req.Permission,
		"granted", req.Granted,
		"actor_id", actorID,
	)

	return override, nil
}

// Revoke marks the matching override revoked. The row stays behind for the
// audit trail; resolution just stops seeing it.
func (svc *PermissionService) Revoke(ctx context.Context, actorID string, req *dtos.RevokePermissionRequest) error {
	perm := constants.Permission(req.Permission)
	if !svc.isKnownPermission(perm) {
		return fmt.Errorf("%s: %s", constants.MsgUnknownPermission, req.Permission)
	}

	if err := svc.permRepo.RevokeOverride(ctx, req.UserID, perm, req.OrgID); err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}

	svc.InvalidateUser(req.UserID)
	svc.audit.RecordPermissionChange(ctx, req.UserID, req.Permission, req.OrgID, "revoked", actorID)

	logging.Info("permission override revoked",
		"user_id", req.UserID,
		"permission", req.Permission,
		"actor_id", actorID,
	)

	return nil
}

// InvalidateUser drops every cached decision for one user, any scope.
func (svc *PermissionService) InvalidateUser(userID string) {
	svc.cache.DeletePrefix(fmt.Sprintf("%s%s_", constants.CachePrefixPermission, userID))
}

func (svc *PermissionService) isKnownPermission(perm constants.Permission) bool {
	if perm.Validate() != nil {
		return false
	}
	for _, known := range constants.PermissionCatalog {
		if known == perm {
			return true
		}
	}
	return false
}
