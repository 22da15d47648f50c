package routes

import (
	"grassroots/warchest/internal/api"
	"grassroots/warchest/internal/constants"
	"grassroots/warchest/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers, jobsHandler *api.JobsHandler) {

	perms := deps.Services.Permission

	// Public routes: no credentials needed
	r.Group(func(public chi.Router) {
		public.Post("/public/user/register", handlers.RegisterUser())
		public.Get("/public/candidates", handlers.ListCandidates())
		public.Get("/public/fundraisers/{fundraiserID}/summary", handlers.FundraiserSummary())
		// Anonymous donations only; attributed ones go through /api/v1
		public.Post("/public/donations", handlers.CreateDonation())
	})

	// API v1 routes: everything here is authenticated by bearer token or
	// API key
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(&deps.Repo.Keys))

		v1.Get("/user/details", handlers.GetUserDetails())
		v1.Post("/user/verify", handlers.VerifyUser())
		v1.Get("/user/permissions", handlers.MyPermissions())

		v1.Post("/orgs/register", handlers.RegisterOrganization())
		v1.Post("/donations", handlers.CreateDonation())

		// Payment gateway callbacks authenticate with an API key
		v1.Post("/webhooks/payment", handlers.PaymentWebhook())

		// Organization-scoped routes; membership gates the whole subtree
		v1.Route("/orgs/{orgID}", func(org chi.Router) {
			org.Use(middleware.IsOrgMemberMiddleware(deps.Repo.Membership))

			org.Get("/", handlers.GetOrganization())
			org.Get("/members", handlers.ListOrgMembers())
			org.Get("/fundraisers", handlers.ListOrgFundraisers())

			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermOrgManageMembers))
				g.Post("/members", handlers.AddOrgMember())
				g.Put("/members/role", handlers.SetOrgMemberRole())
				g.Delete("/members/{userID}", handlers.RemoveOrgMember())
			})

			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermFundraiserCreate))
				g.Post("/fundraisers", handlers.CreateFundraiser())
			})
			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermFundraiserEdit))
				g.Put("/fundraisers/{fundraiserID}", handlers.EditFundraiser())
			})
			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermFundraiserPublish))
				g.Post("/fundraisers/{fundraiserID}/publish", handlers.PublishFundraiser())
				g.Post("/fundraisers/{fundraiserID}/unpublish", handlers.UnpublishFundraiser())
			})

			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermDonationView))
				g.Get("/fundraisers/{fundraiserID}/donations", handlers.ListFundraiserDonations())
			})
			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermOrgViewReports))
				g.Get("/fundraisers/{fundraiserID}/donors", handlers.FundraiserDonorTotals())
				g.Get("/disbursements", handlers.ListOrgDisbursements())
			})
			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermDonationRefund))
				g.Post("/donations/{donationID}/refund", handlers.RefundDonation())
			})

			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermDisbursementCreate))
				g.Post("/disbursements", handlers.CreateDisbursement())
			})
			org.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermDisbursementApprove))
				g.Post("/disbursements/{disbursementID}/approve", handlers.ApproveDisbursement())
				g.Post("/disbursements/{disbursementID}/reject", handlers.RejectDisbursement())
			})
		})

		// Platform administration
		v1.Group(func(admin chi.Router) {
			admin.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermUserManagePerms))
				g.Post("/permissions/check", handlers.CheckPermission())
				g.Post("/admin/permissions/grant", handlers.GrantPermission())
				g.Post("/admin/permissions/revoke", handlers.RevokePermission())
				g.Get("/admin/users/{userID}/permissions", handlers.UserPermissions())
				g.Get("/admin/users/{userID}/permissions/overrides", handlers.ListPermissionOverrides())
			})

			admin.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermAuditView))
				g.Get("/admin/audit/{entityType}/{entityID}", handlers.EntityAuditHistory())
			})

			admin.Group(func(g chi.Router) {
				g.Use(middleware.RequirePermission(perms, constants.PermCandidateSync))
				g.Post("/admin/jobs/sync-candidates", jobsHandler.TriggerCandidateSync())
				g.Get("/admin/candidates/last-sync", handlers.LastCandidateSync())
			})

			// Super-admin only: account state, verification decisions and
			// the post-approval disbursement lifecycle
			admin.Group(func(god chi.Router) {
				god.Use(middleware.IsSuperAdminMiddleware())
				god.Post("/admin/users/{userID}/suspend", handlers.SuspendUser())
				god.Post("/admin/users/{userID}/reinstate", handlers.ReinstateUser())
				god.Post("/admin/users/{userID}/role", handlers.SetPlatformRole())
				god.Post("/admin/orgs/{orgID}/verification", handlers.SetOrgVerification())
				god.Post("/admin/disbursements/{disbursementID}/status", handlers.SetDisbursementStatus())
				god.Get("/admin/jobs/status", jobsHandler.GetJobStatus())
				god.Get("/admin/jobs/queue-depth", jobsHandler.GetQueueDepth())
			})
		})
	})
}
