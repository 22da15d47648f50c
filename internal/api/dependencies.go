package api

import (
	"os"

	"grassroots/warchest/internal/common"
	"grassroots/warchest/internal/db"
	"grassroots/warchest/internal/db/repositories"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/metrics"
	"grassroots/warchest/internal/providers"
	"grassroots/warchest/internal/services"
)

type Repositories struct {
	User         repositories.UserRepository
	UserGorm     *repositories.UserRepositoryGORM
	Keys         repositories.KeysRepo
	Membership   *repositories.MembershipRepository
	Permission   *repositories.PermissionRepository
	Org          *repositories.OrgRepository
	Fundraiser   *repositories.FundraiserRepository
	Donation     *repositories.DonationRepository
	Disbursement *repositories.DisbursementRepository
	Candidate    *repositories.CandidateRepository
	Audit        *repositories.AuditRepository
}

type Services struct {
	Cache           common.CacheInterface
	RedisQueue      common.RedisQueueService
	Audit           *services.AuditService
	Permission      *services.PermissionService
	Donation        *services.DonationService
	Disbursement    *services.DisbursementService
	Fundraiser      *services.FundraiserService
	Registration    *services.RegistrationService
	OrgMgmt         *services.OrgManagementService
	User            *services.UserService
	CandidateImport *services.CandidateImportService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		User:         *repositories.NewUserRepository(db.DB),
		UserGorm:     repositories.NewUserRepositoryGORM(db.PgDB),
		Keys:         *repositories.NewApiKeysRepo(db.DB),
		Membership:   repositories.NewMembershipRepository(db.PgDB),
		Permission:   repositories.NewPermissionRepository(db.PgDB),
		Org:          repositories.NewOrgRepository(db.PgDB),
		Fundraiser:   repositories.NewFundraiserRepository(db.PgDB),
		Donation:     repositories.NewDonationRepository(db.PgDB),
		Disbursement: repositories.NewDisbursementRepository(db.PgDB),
		Candidate:    repositories.NewCandidateRepository(db.PgDB),
		Audit:        repositories.NewAuditRepository(db.PgDB),
	}

	// Redis cache when Redis is configured, in-memory otherwise. Multi
	// instance deployments need the shared invalidation.
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis cache unavailable, using in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(60, 600)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	redisQueue := common.NewRedisQueueService(common.NewRedisClient())

	auditSvc := services.NewAuditService(repos.Audit)
	permSvc := services.NewPermissionService(repos.UserGorm, repos.Membership, repos.Permission, cacheSvc, metricsReg, auditSvc)
	donationSvc := services.NewDonationService(db.PgDB, repos.Donation, repos.Fundraiser, repos.Org, &repos.User, cacheSvc, metricsReg, auditSvc)
	disbursementSvc := services.NewDisbursementService(db.PgDB, repos.Disbursement, repos.Donation, repos.Fundraiser, repos.Org, metricsReg, auditSvc)
	fundraiserSvc := services.NewFundraiserService(repos.Fundraiser, repos.Org, auditSvc)
	registrationSvc := services.NewRegistrationService(db.PgDB, auditSvc)
	orgMgmtSvc := services.NewOrgManagementService(repos.Org, repos.Membership, repos.UserGorm, permSvc, auditSvc)
	userSvc := services.NewUserService(db.PgDB, repos.UserGorm, permSvc, auditSvc)

	feedProvider := providers.NewFECFeedProvider()
	candidateSvc := services.NewCandidateImportService(repos.Candidate, feedProvider, cacheSvc, metricsReg, auditSvc)

	svcs := &Services{
		Cache:           cacheSvc,
		RedisQueue:      *redisQueue,
		Audit:           auditSvc,
		Permission:      permSvc,
		Donation:        donationSvc,
		Disbursement:    disbursementSvc,
		Fundraiser:      fundraiserSvc,
		Registration:    registrationSvc,
		OrgMgmt:         orgMgmtSvc,
		User:            userSvc,
		CandidateImport: candidateSvc,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil

}
