package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/working-schedule/internal/audit"
	"github.com/BruksfildServices01/working-schedule/internal/config"
	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/handlers"
	"github.com/BruksfildServices01/working-schedule/internal/host"
	infraRepo "github.com/BruksfildServices01/working-schedule/internal/infra/repository"
	"github.com/BruksfildServices01/working-schedule/internal/metrics"
	"github.com/BruksfildServices01/working-schedule/internal/middleware"
	"github.com/BruksfildServices01/working-schedule/internal/session"
	ucSchedule "github.com/BruksfildServices01/working-schedule/internal/usecase/schedule"
)

// RegisterRoutes wires every dependency and route. The returned function
// flushes pending audit events and must be called on shutdown.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) (func(), error) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitPerMin, log).Middleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	recorder := metrics.NewPrometheusRecorder(prometheus.NewRegistry())

	recordRepo := infraRepo.NewRecordGormRepository(db)

	var archive record.Archive = record.NoopArchive{}
	if cfg.ArchiveEnabled() {
		s3Archive, err := infraRepo.NewRecordS3Archive(infraRepo.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Prefix:          cfg.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		archive = s3Archive
	}

	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		log.Info("redis not configured, editor sessions kept in memory")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	forms := host.NewForms(recordRepo, archive, cfg.TraceFieldPaths, log.Named("host"))

	auditDispatcher := audit.NewDispatcher(audit.New(db), log.Named("audit"))

	// ======================================================
	// 🧠 USE CASES: SCHEDULE EDITOR
	// ======================================================
	ucLog := log.Named("schedule")

	openSessionUC := ucSchedule.NewOpenSession(forms, sessions, auditDispatcher, recorder, ucLog)
	getSessionUC := ucSchedule.NewGetSession(sessions)
	applyOperationUC := ucSchedule.NewApplyOperation(forms, sessions, auditDispatcher, recorder, ucLog)
	closeSessionUC := ucSchedule.NewCloseSession(sessions, auditDispatcher, recorder)
	checkOpenUC := ucSchedule.NewCheckOpen(forms)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, log.Named("auth"))
	meHandler := handlers.NewMeHandler(db)
	recordHandler := handlers.NewRecordHandler(recordRepo, forms, log.Named("records"))
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(
		openSessionUC,
		getSessionUC,
		applyOperationUC,
		closeSessionUC,
		checkOpenUC,
	)

	// ======================================================
	// 🔎 OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(recorder.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/plugin/manifest", handlers.PluginManifestHandler)

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

			// ------------------------------
			// RECORDS
			// ------------------------------
			secured.POST("/records", recordHandler.Create)
			secured.GET("/records/:id", recordHandler.Get)
			secured.PUT("/records/:id", recordHandler.Update)
			secured.GET("/records/:id/open", scheduleHandler.IsOpen)

			// ------------------------------
			// SCHEDULE EDITOR SESSIONS
			// ------------------------------
			secured.POST("/sessions", scheduleHandler.Open)
			secured.GET("/sessions/:id", scheduleHandler.Get)
			secured.DELETE("/sessions/:id", scheduleHandler.Close)

			secured.POST("/sessions/:id/entries", scheduleHandler.AddEntry)
			secured.DELETE("/sessions/:id/entries/:entryId", scheduleHandler.RemoveEntry)
			secured.PUT("/sessions/:id/entries/:entryId/:field", scheduleHandler.UpdateEntryField)
			secured.POST("/sessions/:id/entries/:entryId/weekdays/:position/toggle", scheduleHandler.ToggleWeekday)

			secured.POST("/sessions/:id/entries/:entryId/slots", scheduleHandler.AddTimeSlot)
			secured.PATCH("/sessions/:id/entries/:entryId/slots/:slotId", scheduleHandler.UpdateTimeSlot)
			secured.DELETE("/sessions/:id/entries/:entryId/slots/:slotId", scheduleHandler.RemoveTimeSlot)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return auditDispatcher.Close, nil
}
