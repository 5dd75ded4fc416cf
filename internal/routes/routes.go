package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	"github.com/mshservicos/hidro-scheduler/internal/cache"
	"github.com/mshservicos/hidro-scheduler/internal/config"
	"github.com/mshservicos/hidro-scheduler/internal/handlers"
	infraRepo "github.com/mshservicos/hidro-scheduler/internal/infra/repository"
	"github.com/mshservicos/hidro-scheduler/internal/middleware"
	"github.com/mshservicos/hidro-scheduler/internal/storage"
	ucSchedule "github.com/mshservicos/hidro-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	loc := cfg.Location()

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db, cfg.CustomerDedupeKey)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.NewAvailabilityCache(cfg.RedisAddr)
	photoStore := storage.NewPhotoStore(cfg)

	// ======================================================
	// 🧠 USE CASES — AGENDA
	// ======================================================
	availabilityUC := ucSchedule.NewGetAvailability(scheduleRepo, loc)

	dayOverviewUC := ucSchedule.NewDayOverview(scheduleRepo, loc)

	createAppointmentUC := ucSchedule.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
		loc,
	)

	transitionStatusUC := ucSchedule.NewTransitionStatus(
		scheduleRepo,
		auditDispatcher,
		loc,
	)

	cancelByCodeUC := ucSchedule.NewCancelByTrackingCode(
		scheduleRepo,
		auditDispatcher,
		loc,
	)

	generateWorkOrderUC := ucSchedule.NewGenerateWorkOrder(
		scheduleRepo,
		auditDispatcher,
	)

	issueInvoiceUC := ucSchedule.NewIssueInvoice(
		scheduleRepo,
		auditDispatcher,
		loc,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityCache,
		loc,
		availabilityUC,
		createAppointmentUC,
		cancelByCodeUC,
	)

	agendaHandler := handlers.NewAgendaHandler(loc, dayOverviewUC)
	statusHandler := handlers.NewAppointmentStatusHandler(availabilityCache, loc, transitionStatusUC)

	serviceHandler := handlers.NewServiceHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	timeOffHandler := handlers.NewTimeOffHandler(db, auditDispatcher, availabilityCache, loc)

	workOrderHandler := handlers.NewWorkOrderHandler(db, auditDispatcher, photoStore, generateWorkOrderUC)
	invoiceHandler := handlers.NewInvoiceHandler(db, issueInvoiceUC)

	dashboardHandler := handlers.NewDashboardHandler(db, loc)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/slots", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)

			publicAPI.GET("/tracking/:code", publicHandler.TrackAppointment)
			publicAPI.PATCH("/tracking/:code/cancel", publicHandler.CancelByTrackingCode)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
		{
			admin.GET("/me", authHandler.GetMe)

			admin.GET("/agenda", agendaHandler.Day)
			admin.PATCH("/appointments/:id/status", statusHandler.Transition)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/customers", customerHandler.List)

			admin.GET("/business-hours", businessHoursHandler.Get)
			admin.PUT("/business-hours", businessHoursHandler.Update)

			admin.GET("/time-off", timeOffHandler.List)
			admin.POST("/time-off", timeOffHandler.Create)
			admin.DELETE("/time-off/:id", timeOffHandler.Delete)

			// ------------------------------
			// ORDENS DE SERVIÇO
			// ------------------------------
			admin.GET("/work-orders", workOrderHandler.List)
			admin.GET("/work-orders/:id", workOrderHandler.Get)
			admin.PATCH("/work-orders/:id", workOrderHandler.Update)
			admin.POST("/appointments/:id/work-order", workOrderHandler.FromAppointment)
			admin.POST("/work-orders/:id/photos", workOrderHandler.UploadPhoto)

			// ------------------------------
			// NOTAS
			// ------------------------------
			admin.GET("/invoices", invoiceHandler.List)
			admin.GET("/invoices/:id", invoiceHandler.Get)
			admin.POST("/work-orders/:id/invoice", invoiceHandler.FromWorkOrder)
			admin.PATCH("/invoices/:id/pay", invoiceHandler.MarkPaid)

			admin.GET("/dashboard", dashboardHandler.Summary)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
