package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/keralatechreach/portal-api/internal/config"
	"github.com/keralatechreach/portal-api/internal/database"
	"github.com/keralatechreach/portal-api/internal/handler"
	"github.com/keralatechreach/portal-api/internal/middleware"
	"github.com/keralatechreach/portal-api/internal/models"
	"github.com/keralatechreach/portal-api/internal/repository"
	"github.com/keralatechreach/portal-api/internal/router"
	"github.com/keralatechreach/portal-api/internal/service"
	cloud "github.com/keralatechreach/portal-api/pkg/cloudinary"
	"github.com/keralatechreach/portal-api/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.UserAccount{},
		&models.UserProfile{},
		&models.ActivityLog{},
		&models.News{},
		&models.District{},
		&models.EventCategory{},
		&models.Event{},
		&models.Job{},
		&models.Exam{},
		&models.EntranceNotification{},
		&models.University{},
		&models.Degree{},
		&models.QuestionPaper{},
		&models.Note{},
		&models.GalleryItem{},
		&models.Initiative{},
		&models.ContactMessage{},
		&models.UploadRecord{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis caches derived public listings. The portal keeps serving from
	// the database when it is absent.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, public listing cache disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, activity events will not be published")
	}

	var storage service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		storage = uploader
	} else {
		logger.Warn().Msg("cloudinary not configured, file uploads disabled")
	}

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, logger)
	} else {
		logger.Warn().Msg("smtp not configured, outbound mail will be logged only")
		mail = mailer.NewLogMailer(logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	eventRepo := repository.NewEventRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	examRepo := repository.NewExamRepository(db)
	entranceRepo := repository.NewEntranceNotificationRepository(db)
	academicTaxonomyRepo := repository.NewAcademicTaxonomyRepository(db)
	questionPaperRepo := repository.NewQuestionPaperRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	initiativeRepo := repository.NewInitiativeRepository(db)
	contactRepo := repository.NewContactRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	statsRepo := repository.NewAdminStatsRepository(db)

	activityService := service.NewActivityService(activityRepo, natsConn, logger)
	authService := service.NewAuthService(userRepo, cfg, validate, activityService, mail, logger)
	userService := service.NewUserService(userRepo, validate, activityService, logger)
	newsService := service.NewNewsService(newsRepo, redisClient, cfg.PublicCacheTTL, validate, activityService, logger)
	eventService := service.NewEventService(eventRepo, redisClient, validate, activityService, logger)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo, validate, activityService, logger)
	jobService := service.NewJobService(jobRepo, redisClient, validate, activityService, logger)
	examService := service.NewExamService(examRepo, academicTaxonomyRepo, validate, activityService, logger)
	entranceService := service.NewEntranceNotificationService(entranceRepo, validate, activityService, logger)
	academicTaxonomyService := service.NewAcademicTaxonomyService(academicTaxonomyRepo, validate, activityService, logger)
	questionPaperService := service.NewQuestionPaperService(questionPaperRepo, academicTaxonomyRepo, validate, activityService, logger)
	noteService := service.NewNoteService(noteRepo, academicTaxonomyRepo, validate, activityService, logger)
	galleryService := service.NewGalleryService(galleryRepo, validate, activityService, logger)
	initiativeService := service.NewInitiativeService(initiativeRepo, validate, activityService, logger)
	contactService := service.NewContactService(contactRepo, validate, activityService, mail, cfg.ContactNotifyEmail, logger)
	statsService := service.NewAdminStatsService(statsRepo, redisClient, cfg.PublicCacheTTL, logger)

	var uploadService service.UploadService
	if storage != nil {
		uploadService = service.NewUploadService(storage, uploadRepo, cfg.UploadMaxSizeMB, logger)
	}

	deps := router.Dependencies{
		AuthHandler:                 handler.NewAuthHandler(authService, logger),
		NewsHandler:                 handler.NewNewsHandler(newsService, logger),
		EventHandler:                handler.NewEventHandler(eventService, logger),
		TaxonomyHandler:             handler.NewTaxonomyHandler(taxonomyService, logger),
		JobHandler:                  handler.NewJobHandler(jobService, logger),
		ExamHandler:                 handler.NewExamHandler(examService, logger),
		EntranceNotificationHandler: handler.NewEntranceNotificationHandler(entranceService, logger),
		AcademicHandler:             handler.NewAcademicHandler(academicTaxonomyService, questionPaperService, noteService, uploadService, logger),
		GalleryHandler:              handler.NewGalleryHandler(galleryService, logger),
		InitiativeHandler:           handler.NewInitiativeHandler(initiativeService, logger),
		ContactHandler:              handler.NewContactHandler(contactService, logger),

		AdminNewsHandler:                 handler.NewAdminNewsHandler(newsService, logger),
		AdminEventHandler:                handler.NewAdminEventHandler(eventService, logger),
		AdminTaxonomyHandler:             handler.NewAdminTaxonomyHandler(taxonomyService, logger),
		AdminJobHandler:                  handler.NewAdminJobHandler(jobService, logger),
		AdminExamHandler:                 handler.NewAdminExamHandler(examService, logger),
		AdminEntranceNotificationHandler: handler.NewAdminEntranceNotificationHandler(entranceService, logger),
		AdminAcademicTaxonomyHandler:     handler.NewAdminAcademicTaxonomyHandler(academicTaxonomyService, logger),
		AdminQuestionPaperHandler:        handler.NewAdminQuestionPaperHandler(questionPaperService, logger),
		AdminNoteHandler:                 handler.NewAdminNoteHandler(noteService, logger),
		AdminGalleryHandler:              handler.NewAdminGalleryHandler(galleryService, logger),
		AdminInitiativeHandler:           handler.NewAdminInitiativeHandler(initiativeService, logger),
		AdminContactHandler:              handler.NewAdminContactHandler(contactService, logger),
		AdminUserHandler:                 handler.NewAdminUserHandler(userService, logger),
		AdminStatsHandler:                handler.NewAdminStatsHandler(statsService, logger),
		ActivityHandler:                  handler.NewActivityHandler(activityService, logger),
	}
	if uploadService != nil {
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Msg("portal api started")

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
