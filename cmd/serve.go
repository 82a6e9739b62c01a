package cmd

import (
	"database/sql"
	"net"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/controller"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/mailer"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/middleware"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/repository"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	configureLogging(cfg)

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	sender := newSender(cfg)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewConfirmationTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	hasher := service.NewPasswordHasher()
	codec := service.NewTokenCodec(cfg)
	confirmationService := service.NewConfirmationService(userRepo, tokenRepo, sender, cfg)
	userAuthService := service.NewUserAuthService(userRepo, confirmationService, hasher, codec, cfg)
	bookService := service.NewBookService(bookRepo)
	noteService := service.NewNoteService(noteRepo, bookService)

	startHTTPServer(cfg, codec, userRepo, userAuthService, confirmationService, bookService, noteService)
}

func newSender(cfg *config.Config) mailer.Sender {
	if !cfg.SMTP.Enabled() {
		logrus.Warn("SMTP not configured, confirmation emails will be logged only")
		return mailer.NewLogSender()
	}

	sender, err := mailer.NewSMTPSender(cfg.SMTP)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure SMTP sender")
	}
	return sender
}

func configureLogging(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func startHTTPServer(
	cfg *config.Config,
	codec *service.TokenCodec,
	userRepo *repository.UserRepository,
	userAuthService *service.UserAuthService,
	confirmationService *service.ConfirmationService,
	bookService *service.BookService,
	noteService *service.NoteService,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authMiddleware := middleware.NewAuthMiddleware(codec, userRepo)
	e.Use(authMiddleware.Authenticate)

	authController := controller.NewAuthController(userAuthService, confirmationService)
	bookController := controller.NewBookController(bookService)
	noteController := controller.NewNoteController(noteService)

	auth := e.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.GET("/confirm", authController.Confirm)
	auth.POST("/resend-confirmation", authController.ResendConfirmation)

	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth)
	authProtected.POST("/change-password", authController.ChangePassword)
	authProtected.POST("/change-nick", authController.ChangeNick)
	authProtected.POST("/change-email", authController.ChangeEmail)

	api := e.Group("/api")
	api.Use(authMiddleware.RequireAuth)
	api.POST("/books", bookController.Create)
	api.GET("/books", bookController.List)
	api.GET("/books/:id", bookController.Get)
	api.PUT("/books/:id", bookController.Update)
	api.DELETE("/books/:id", bookController.Delete)
	api.POST("/books/:id/notes", noteController.Create)
	api.GET("/books/:id/notes", noteController.ListForBook)
	api.PUT("/notes/:id", noteController.Update)
	api.DELETE("/notes/:id", noteController.Delete)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
