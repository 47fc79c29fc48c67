package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/database"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/notifier"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/router"
	"github.com/iliyamo/user-auth-service/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins

	cfg := config.Load()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := repository.NewUserRepo(client.Database(cfg.MongoDB))
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := users.EnsureIndexes(ctx); err != nil {
			cancel()
			log.Fatalf("ensure indexes: %v", err)
		}
		cancel()
	}

	// Mail goes out directly over SMTP, or through RabbitMQ when a broker
	// is configured, or to the log when neither is set up.
	var direct notifier.Notifier = notifier.LogOnly{}
	if cfg.SMTPHost != "" {
		direct = notifier.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}
	mail := direct
	if cfg.AMQPURL != "" {
		mail = queue.NewPublisher(cfg.AMQPURL)
		go queue.StartEmailConsumer(cfg.AMQPURL, direct)
	}

	svc := service.NewAuthService(users, mail, service.Options{
		JWTSecret:     cfg.JWTSecret,
		JWTExpiresIn:  cfg.JWTExpiresIn,
		OTPExpiresIn:  cfg.OTPExpiresIn,
		SigninOTPTTL:  cfg.SigninOTPTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		BcryptCost:    cfg.BcryptCost,
		BaseURL:       cfg.BaseURL,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit("12M")) // 10MB picture plus multipart overhead

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	rlCfg := config.LoadRateLimitConfig()
	e.Use(middleware.RateLimit(rlCfg, rdb))

	table := router.RegisterRoutes(e, router.Deps{
		Auth:      handler.NewAuthHandler(svc, cfg.BaseURL, cfg.ReturnOTP),
		Verifier:  svc,
		RateLimit: rlCfg,
		Redis:     rdb,
	})
	e.HTTPErrorHandler = router.ErrorHandler(table)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
