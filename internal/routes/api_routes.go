package routes

import (
	"github.com/s4ngl/iu-icems-website-sub000/internal/api"
	"github.com/s4ngl/iu-icems-website-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies) {

	// Public routes: anyone can browse the calendar
	r.Group(func(public chi.Router) {
		public.Get("/api/v1/events", handlers.ListEventsHandler())
		public.Get("/api/v1/events/{eventID}", handlers.GetEventHandler())
		public.Get("/api/v1/training", handlers.ListTrainingSessionsHandler())
		public.Get("/api/v1/training/{sessionID}", handlers.GetTrainingSessionHandler())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Repo.MemberGorm, deps.Services.Cache)) // all routes below require an active member

		// Self-service
		v1.Get("/members/profile", handlers.GetProfileHandler())
		v1.Patch("/members/profile", handlers.UpdateProfileHandler())
		v1.Get("/members/profile/hours", handlers.ListMyHoursHandler())
		v1.Get("/members/profile/certifications", handlers.ListMyCertificationsHandler())
		v1.Get("/members/profile/penalties", handlers.ListMyPenaltiesHandler())

		// Event waitlist
		v1.Post("/events/{eventID}/signups", handlers.EventSignupHandler())
		v1.Get("/events/{eventID}/staffing", handlers.StaffingStatusHandler())
		v1.Delete("/signups/{signupID}", handlers.RemoveSignupHandler())

		// Certifications
		v1.Post("/certifications", handlers.UploadCertificationHandler())

		// Training signups
		v1.Post("/training/{sessionID}/signups", handlers.TrainingSignupHandler())
		v1.Delete("/training/signups/{signupID}", handlers.WithdrawTrainingSignupHandler())

		// Supervisor group: staffing decisions and hours confirmation
		v1.Group(func(supervisor chi.Router) {
			supervisor.Use(middleware.IsSupervisorMiddleware())

			supervisor.Get("/events/{eventID}/waitlist", handlers.ListWaitlistHandler())
			supervisor.Post("/events/{eventID}/assign", handlers.AssignHandler())
			supervisor.Post("/events/{eventID}/unassign", handlers.UnassignHandler())
			supervisor.Post("/events/{eventID}/auto-assign", handlers.AutoAssignHandler())
			supervisor.Post("/events/{eventID}/hours", handlers.ConfirmHoursHandler())
			supervisor.Get("/events/{eventID}/hours", handlers.ListEventHoursHandler())
			supervisor.Get("/training/{sessionID}/roster", handlers.ListTrainingRosterHandler())

			// Board group: CRUD, approvals, penalties, member management
			supervisor.Group(func(board chi.Router) {
				board.Use(middleware.IsBoardMiddleware())

				board.Post("/events", handlers.CreateEventHandler())
				board.Patch("/events/{eventID}", handlers.UpdateEventHandler())
				board.Delete("/events/{eventID}", handlers.DeleteEventHandler())

				board.Post("/training", handlers.CreateTrainingHandler())
				board.Patch("/training/{sessionID}", handlers.UpdateTrainingHandler())
				board.Delete("/training/{sessionID}", handlers.DeleteTrainingHandler())
				board.Post("/training/signups/{signupID}/payment", handlers.ConfirmTrainingPaymentHandler())

				board.Get("/certifications/pending", handlers.ListPendingCertificationsHandler())
				board.Post("/certifications/{certID}/approve", handlers.ApproveCertificationHandler())
				board.Delete("/certifications/{certID}", handlers.RejectCertificationHandler())

				board.Post("/penalties", handlers.AssignPenaltyHandler())
				board.Delete("/penalties/{penaltyID}", handlers.DeactivatePenaltyHandler())

				board.Get("/members", handlers.ListMembersHandler())
				board.Get("/members/{memberID}", handlers.GetMemberHandler())
				board.Patch("/members/{memberID}", handlers.UpdateMemberHandler())

				// Admin group: operational triggers
				board.Group(func(admin chi.Router) {
					admin.Use(middleware.IsAdminMiddleware())

					admin.Post("/admin/certifications/expiry-scan", handlers.RunCertExpiryScanHandler())
				})
			})
		})
	})
}
