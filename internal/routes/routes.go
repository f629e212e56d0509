package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/estilobarber/barberia-api/internal/calendar"
	"github.com/estilobarber/barberia-api/internal/config"
	"github.com/estilobarber/barberia-api/internal/handlers"
	infraRepo "github.com/estilobarber/barberia-api/internal/infra/repository"
	"github.com/estilobarber/barberia-api/internal/middleware"
	"github.com/estilobarber/barberia-api/internal/models"
	"github.com/estilobarber/barberia-api/internal/notify"
	"github.com/estilobarber/barberia-api/internal/payments"
	ucAppointment "github.com/estilobarber/barberia-api/internal/usecase/appointment"
	ucCatalog "github.com/estilobarber/barberia-api/internal/usecase/catalog"
)

// Dependencies carries the shared infrastructure built in main.
type Dependencies struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *zap.Logger
	Notifier *notify.Dispatcher
	Calendar calendar.Sync
	Payments payments.Gateway
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	db := deps.DB
	cfg := deps.Cfg

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	catalogReader := ucCatalog.NewReader(catalogRepo)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		cfg.SlotStepMin,
		cfg.SlotStepSundayMin,
	)

	bookUC := ucAppointment.NewBook(
		appointmentRepo,
		deps.Notifier,
		deps.Calendar,
		deps.Log,
		cfg.Timezone,
	)

	cancelOwnUC := ucAppointment.NewCancelOwn(
		appointmentRepo,
		deps.Notifier,
		deps.Calendar,
		deps.Log,
		cfg.Timezone,
	)

	changeStatusUC := ucAppointment.NewChangeStatus(
		appointmentRepo,
		deps.Notifier,
		deps.Calendar,
		deps.Log,
		cfg.Timezone,
	)

	rescheduleUC := ucAppointment.NewReschedule(
		appointmentRepo,
		deps.Notifier,
		deps.Calendar,
		deps.Log,
		cfg.Timezone,
	)

	listMineUC := ucAppointment.NewListMyCitas(appointmentRepo)
	listByDateUC := ucAppointment.NewListCitasByDate(appointmentRepo)
	statsUC := ucAppointment.NewStats(appointmentRepo)

	updatePaymentUC := ucAppointment.NewUpdatePayment(appointmentRepo, cfg.Timezone)
	checkoutUC := ucAppointment.NewCreateCheckout(appointmentRepo, deps.Payments)

	// ======================================================
	// HANDLERS
	// ======================================================
	reservationHandler := handlers.NewReservationHandler(
		catalogReader,
		availabilityUC,
		bookUC,
		listMineUC,
		cancelOwnUC,
		cfg.Timezone,
	)

	citaHandler := handlers.NewCitaHandler(
		appointmentRepo,
		bookUC,
		listByDateUC,
		changeStatusUC,
		rescheduleUC,
		statsUC,
		updatePaymentUC,
		checkoutUC,
		cfg.Timezone,
	)

	notificationHandler := handlers.NewNotificationHandler(db)
	deviceHandler := handlers.NewDeviceHandler(db)

	// ======================================================
	// RESERVACION (CUSTOMER FLOW)
	// ======================================================
	reservacion := r.Group("/reservacion")
	{
		// Browsing the catalog and checking availability require no session.
		reservacion.GET("/servicios", reservationHandler.ListServices)
		reservacion.GET("/empleados", reservationHandler.ListStaff)
		reservacion.GET("/horarios", reservationHandler.ListSlots)

		secured := reservacion.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/procesar", reservationHandler.Process)
			secured.GET("/mis-citas", reservationHandler.MyCitas)
			secured.PUT("/cancelar/:id", reservationHandler.CancelMine)
		}
	}

	// ======================================================
	// NOTIFICACIONES / DISPOSITIVOS
	// ======================================================
	authd := r.Group("/")
	authd.Use(middleware.AuthMiddleware(cfg))
	{
		authd.GET("/notificaciones", notificationHandler.List)
		authd.PATCH("/notificaciones/:id/leida", notificationHandler.MarkRead)
		authd.POST("/dispositivos", deviceHandler.Register)
	}

	// ======================================================
	// CITAS (STAFF / ADMIN)
	// ======================================================
	citas := r.Group("/citas")
	citas.Use(
		middleware.AuthMiddleware(cfg),
		middleware.RequireRoles(models.RoleEmpleado, models.RoleDueno, models.RoleAdministrador),
	)
	{
		citas.GET("", citaHandler.List)
		citas.GET("/stats", citaHandler.Stats)
		citas.GET("/:id", citaHandler.Get)
		citas.POST("", citaHandler.Create)
		citas.PUT("/:id", citaHandler.Update)
		citas.PATCH("/:id/estado", citaHandler.ChangeEstado)
		citas.DELETE("/:id", citaHandler.Delete)
		citas.PATCH("/:id/pago", citaHandler.UpdatePago)
		citas.POST("/:id/checkout", citaHandler.CreateCheckout)
	}
}
