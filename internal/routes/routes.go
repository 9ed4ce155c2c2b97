package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/salon-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
	)

	rescheduleUC := ucAppointment.NewReschedule(
		appointmentRepo,
		auditDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// 🧠 USE CASES — SCHEDULE
	// ======================================================
	setWeeklyScheduleUC := ucSchedule.NewSetWeeklySchedule(
		appointmentRepo,
		auditDispatcher,
	)

	createExceptionUC := ucSchedule.NewCreateException(
		appointmentRepo,
		auditDispatcher,
	)

	deleteExceptionUC := ucSchedule.NewDeleteException(
		appointmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	serviceVariantHandler := handlers.NewServiceVariantHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(
		db,
		setWeeklyScheduleUC,
		createExceptionUC,
		deleteExceptionUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		updateStatusUC,
		rescheduleUC,
		availabilityUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		createAppointmentUC,
		updateStatusUC,
		availabilityUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (MARKETPLACE)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/variants", publicHandler.ListVariants)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/appointments/:ref", publicHandler.GetAppointment)
			publicAPI.PATCH("/:slug/appointments/:ref/cancel", publicHandler.CancelAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/variants", serviceVariantHandler.List)
			secured.POST("/me/variants", serviceVariantHandler.Create)
			secured.PATCH("/me/variants/:id", serviceVariantHandler.Update)

			secured.GET("/me/schedule", scheduleHandler.GetWeekly)
			secured.PUT("/me/schedule", scheduleHandler.UpdateWeekly)

			secured.GET("/me/schedule/exceptions", scheduleHandler.ListExceptions)
			secured.POST("/me/schedule/exceptions", scheduleHandler.CreateException)
			secured.DELETE("/me/schedule/exceptions/:id", scheduleHandler.DeleteException)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
