package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keralatechreach/portal-api/internal/config"
	"github.com/keralatechreach/portal-api/internal/handler"
	"github.com/keralatechreach/portal-api/internal/middleware"
	"github.com/keralatechreach/portal-api/internal/observability"
)

// Dependencies groups the handlers the router wires up. Nil handlers are
// skipped so tests can register a subset.
type Dependencies struct {
	AuthHandler                 *handler.AuthHandler
	NewsHandler                 *handler.NewsHandler
	EventHandler                *handler.EventHandler
	TaxonomyHandler             *handler.TaxonomyHandler
	JobHandler                  *handler.JobHandler
	ExamHandler                 *handler.ExamHandler
	EntranceNotificationHandler *handler.EntranceNotificationHandler
	AcademicHandler             *handler.AcademicHandler
	GalleryHandler              *handler.GalleryHandler
	InitiativeHandler           *handler.InitiativeHandler
	ContactHandler              *handler.ContactHandler

	AdminNewsHandler                 *handler.AdminNewsHandler
	AdminEventHandler                *handler.AdminEventHandler
	AdminTaxonomyHandler             *handler.AdminTaxonomyHandler
	AdminJobHandler                  *handler.AdminJobHandler
	AdminExamHandler                 *handler.AdminExamHandler
	AdminEntranceNotificationHandler *handler.AdminEntranceNotificationHandler
	AdminAcademicTaxonomyHandler     *handler.AdminAcademicTaxonomyHandler
	AdminQuestionPaperHandler        *handler.AdminQuestionPaperHandler
	AdminNoteHandler                 *handler.AdminNoteHandler
	AdminGalleryHandler              *handler.AdminGalleryHandler
	AdminInitiativeHandler           *handler.AdminInitiativeHandler
	AdminContactHandler              *handler.AdminContactHandler
	AdminUserHandler                 *handler.AdminUserHandler
	AdminStatsHandler                *handler.AdminStatsHandler
	ActivityHandler                  *handler.ActivityHandler
	UploadHandler                    *handler.UploadHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtProtected := middleware.JWTProtected(cfg.JWTSecret)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtProtected))
	}

	if deps.NewsHandler != nil {
		deps.NewsHandler.Register(api.Group("/news"))
	}
	if deps.EventHandler != nil {
		deps.EventHandler.Register(api.Group("/events"))
	}
	if deps.TaxonomyHandler != nil {
		deps.TaxonomyHandler.Register(api)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.Register(api.Group("/jobs"))
	}
	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(api.Group("/exams"))
	}
	if deps.EntranceNotificationHandler != nil {
		deps.EntranceNotificationHandler.Register(api.Group("/entrance-notifications"))
	}
	if deps.AcademicHandler != nil {
		deps.AcademicHandler.Register(api)
		// Visitor note submissions share an IP rate limit with the
		// contact form to blunt drive-by spam.
		deps.AcademicHandler.RegisterUpload(api.Group("", middleware.RateLimit("public_submit", 10, time.Minute)))
	}
	if deps.GalleryHandler != nil {
		deps.GalleryHandler.Register(api.Group("/gallery"))
	}
	if deps.InitiativeHandler != nil {
		deps.InitiativeHandler.Register(api.Group("/initiatives"))
	}
	if deps.ContactHandler != nil {
		deps.ContactHandler.Register(api.Group("/contact", middleware.RateLimit("public_submit", 10, time.Minute)))
	}

	admin := api.Group("/admin", jwtProtected, middleware.RequireRole("staff"))

	if deps.AdminNewsHandler != nil {
		deps.AdminNewsHandler.Register(admin.Group("/news"))
	}
	if deps.AdminEventHandler != nil {
		deps.AdminEventHandler.Register(admin.Group("/events"))
	}
	if deps.AdminTaxonomyHandler != nil {
		deps.AdminTaxonomyHandler.Register(admin)
	}
	if deps.AdminJobHandler != nil {
		deps.AdminJobHandler.Register(admin.Group("/jobs"))
	}
	if deps.AdminExamHandler != nil {
		deps.AdminExamHandler.Register(admin.Group("/exams"))
	}
	if deps.AdminEntranceNotificationHandler != nil {
		deps.AdminEntranceNotificationHandler.Register(admin.Group("/entrance-notifications"))
	}
	if deps.AdminAcademicTaxonomyHandler != nil {
		deps.AdminAcademicTaxonomyHandler.Register(admin)
	}
	if deps.AdminQuestionPaperHandler != nil {
		deps.AdminQuestionPaperHandler.Register(admin.Group("/question-papers"))
	}
	if deps.AdminNoteHandler != nil {
		deps.AdminNoteHandler.Register(admin.Group("/notes"))
	}
	if deps.AdminGalleryHandler != nil {
		deps.AdminGalleryHandler.Register(admin.Group("/gallery"))
	}
	if deps.AdminInitiativeHandler != nil {
		deps.AdminInitiativeHandler.Register(admin.Group("/initiatives"))
	}
	if deps.AdminContactHandler != nil {
		deps.AdminContactHandler.Register(admin.Group("/contact-messages"))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
	if deps.AdminStatsHandler != nil {
		deps.AdminStatsHandler.Register(admin.Group("/stats"))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(admin.Group("/activity"))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(admin.Group("/uploads"))
	}
}
