package app

import (
	"database/sql"

	"hiringlens/internal/auth"
	"hiringlens/internal/company"
	"hiringlens/internal/config"
	"hiringlens/internal/contact"
	"hiringlens/internal/interview"
	"hiringlens/internal/messaging/kafka"
	"hiringlens/internal/revalidate"
	"hiringlens/internal/score"
	"hiringlens/internal/shared/pagecache"
	"hiringlens/internal/vote"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Shared infrastructure ---
	pages := pagecache.NewInvalidator(rdb)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	interviewRepo := interview.NewRepository(gormDB)
	scoreRepo := score.NewRepository(gormDB)
	voteRepo := vote.NewRepository(gormDB)
	contactRepo := contact.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo)
	companyService := company.NewService(companyRepo)
	scoreService := score.NewService(scoreRepo, companyService, rdb)
	interviewService := interview.NewService(
		db,
		interviewRepo,
		companyService,
		authRepo,
		outboxRepo,
		pages,
		scoreService,
	)
	voteService := vote.NewService(voteRepo)
	mailer := contact.NewSMTPMailer(contact.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		To:       cfg.SMTP.ContactTo,
	})
	contactService := contact.NewService(contactRepo, mailer)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	interviewHandler := interview.NewHandlerWithRedis(interviewService, rdb)
	scoreHandler := score.NewHandler(scoreService)
	voteHandler := vote.NewHandler(voteService)
	contactHandler := contact.NewHandler(contactService)
	revalidateHandler := revalidate.NewHandler(cfg.Site.RevalidateSecret, pages)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		interview.RegisterRoutes(api, interviewHandler, rdb)
		score.RegisterRoutes(api, scoreHandler)
		vote.RegisterRoutes(api, voteHandler)
		contact.RegisterRoutes(api, contactHandler)
	}

	revalidate.RegisterRoutes(router.Group("/api"), revalidateHandler)

	return nil
}
