package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"kemlabels/api/handler"
	apiMiddleware "kemlabels/api/middleware"
	"kemlabels/api/routes"
	"kemlabels/config"
	"kemlabels/internal/entity"
	"kemlabels/internal/repository"
	"kemlabels/internal/service"
	"kemlabels/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("cannot reach database")
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.VerificationToken{},
		&entity.OTP{},
		&entity.SecurityLog{},
	); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	tokenRepo := repository.NewVerificationTokenRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	securityRepo := repository.NewSecurityLogRepository(db)

	// One-shot sweep of sessions left over from the previous run; there is
	// no background cleanup, expired rows are also filtered on read.
	if err := sessionRepo.DeleteExpired(context.Background()); err != nil {
		logger.WithError(err).Warn("session sweep failed")
	}

	var emailSender service.EmailSender
	if cfg.ResendAPIKey != "" && cfg.MailFrom != "" {
		emailSender = service.NewAsyncEmailSender(
			service.NewResendEmailSender(cfg.ResendAPIKey, cfg.MailFrom),
			logger,
		)
	} else {
		logger.Warn("email sender not configured, outbound mail disabled")
	}

	sessionTokens := &utils.SessionTokenManager{
		Secret: []byte(cfg.SessionSecret),
		Issuer: "kemlabels",
		TTL:    cfg.SessionTTL,
	}

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		tokenRepo,
		otpRepo,
		securityRepo,
		emailSender,
		service.BcryptPasswordHasher{},
		service.RealClock{},
		service.AuthConfig{
			SessionTTL:           cfg.SessionTTL,
			VerificationTokenTTL: cfg.VerificationTokenTTL,
			OTPTTL:               cfg.OTPTTL,
			AppBaseURL:           cfg.AppBaseURL,
		},
	)

	authHandler := handler.NewAuthHandler(authService, validate, sessionTokens)
	authHandler.CookieDomain = cfg.CookieDomain
	authHandler.SecureCookies = cfg.CookieSecure
	authHandler.SessionTTL = cfg.SessionTTL

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	sessionMiddleware := apiMiddleware.SessionMiddleware{
		Tokens:     sessionTokens,
		Sessions:   sessionRepo,
		CookieName: authHandler.CookieName,
		SessionTTL: cfg.SessionTTL,
	}
	router := routes.NewRouter(app, authHandler, sessionMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
