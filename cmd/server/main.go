package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/go-co-op/gocron/v2"
	"github.com/haatos/simple-lms/internal"
	"github.com/haatos/simple-lms/internal/handler"
	"github.com/haatos/simple-lms/internal/mail"
	"github.com/haatos/simple-lms/internal/security"
	"github.com/haatos/simple-lms/internal/service"
	"github.com/haatos/simple-lms/internal/settings"
	"github.com/haatos/simple-lms/internal/storage"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	settings.ReadDotenv(internal.DotEnvPath)
	settings.Settings = settings.NewSettings()
	internal.InitializeConfiguration(internal.ConfigPath)
	settings.Settings.SessionExpires = internal.Config.SessionExpires()

	logger := newLogger(settings.Settings)
	defer logger.Sync()

	hashKey, blockKey := security.NewKeys(internal.DotEnvPath)

	rdb := store.InitDatabase(settings.Settings, true)
	defer rdb.Close()
	rwdb := rdb
	if settings.Settings.DBDriver == settings.DriverSQLite {
		rwdb = store.InitDatabase(settings.Settings, false)
		defer rwdb.Close()
	}
	if err := store.RunMigrations(rwdb, settings.Settings.DBDriver); err != nil {
		logger.Fatal("err running migrations", zap.Error(err))
	}

	pingers := map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return store.Ping(ctx, rdb) },
	}
	sessionStore := newSessionStore(logger, rdb, rwdb, pingers)

	files := newStorage(logger)
	defer files.Close()

	hasher := security.NewBcryptHasher(internal.Config.BcryptCost)
	service.InitializeSuperAdmin(settings.Settings, hasher, internal.DotEnvPath)

	userStore := store.NewUserSQLStore(rdb, rwdb)
	cookieSvc := service.NewCookieService(hashKey, blockKey)
	sessionSvc := service.NewSessionService(sessionStore, settings.Settings.SessionExpires, logger)
	userSvc := service.NewUserService(userStore, hasher, files, logger)
	resetCodeSvc := service.NewResetCodeService(
		userStore,
		hasher,
		newMailer(logger),
		service.NewRandomCodeGen(),
		sessionSvc,
		internal.Config.ResetCodeTTL(),
		logger,
	)
	superAdminSvc := service.NewSuperAdminService(
		settings.Settings.SuperAdminUsername,
		settings.Settings.SuperAdminPasswordHash,
		hasher,
	)
	teacherSvc := service.NewTeacherService(store.NewTeacherSQLStore(rdb, rwdb), hasher, files, logger)
	courseSvc := service.NewCourseService(store.NewCourseSQLStore(rdb, rwdb), files, logger)

	scheduler := service.NewScheduler()
	defer shutdownScheduler(scheduler, logger)
	if err := sessionSvc.ScheduleCleanUp(scheduler); err != nil {
		logger.Fatal("err scheduling session clean up", zap.Error(err))
	}
	scheduler.Start()

	e := setupEcho(logger)
	handler.SetupRoutes(e, handler.Dependencies{
		Users:      userSvc,
		Sessions:   sessionSvc,
		ResetCodes: resetCodeSvc,
		SuperAdmin: superAdminSvc,
		Teachers:   teacherSvc,
		Courses:    courseSvc,
		Cookies:    cookieSvc,
		Files:      files,
		Pingers:    pingers,
		Logger:     logger,
	})

	internal.GracefulShutdown(e, settings.Settings.Port, logger)
}

func newLogger(s *settings.AppSettings) *zap.Logger {
	var logger *zap.Logger
	var err error
	if s.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("err creating logger: ", err)
	}
	return logger
}

func newSessionStore(
	logger *zap.Logger,
	rdb, rwdb *sql.DB,
	pingers map[string]handler.Pinger,
) service.SessionStore {
	if settings.Settings.SessionBackend != settings.SessionBackendRedis {
		return store.NewSessionSQLStore(rdb, rwdb)
	}
	client, err := store.NewRedisClient(
		context.Background(),
		settings.Settings.RedisAddr,
		settings.Settings.RedisPassword,
		settings.Settings.RedisDB,
	)
	if err != nil {
		logger.Fatal("err connecting to redis", zap.Error(err))
	}
	pingers["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	logger.Info("using redis session store", zap.String("addr", settings.Settings.RedisAddr))
	return store.NewSessionRedisStore(client)
}

type closableStorage interface {
	storage.Storage
	Close() error
}

func newStorage(logger *zap.Logger) closableStorage {
	s := settings.Settings
	if s.StorageBackend == settings.StorageSFTP {
		files, err := storage.NewSFTPStorageFromKeyFile(s.SFTPAddr, s.SFTPUser, s.SFTPKeyPath, s.SFTPRoot)
		if err != nil {
			logger.Fatal("err creating sftp storage", zap.Error(err))
		}
		logger.Info("using sftp storage", zap.String("addr", s.SFTPAddr))
		return files
	}
	files, err := storage.NewLocalStorage(s.UploadDir)
	if err != nil {
		logger.Fatal("err creating upload directory", zap.Error(err))
	}
	return files
}

func newMailer(logger *zap.Logger) mail.Mailer {
	s := settings.Settings
	if s.SMTPHost == "" {
		logger.Warn("LMS_SMTP_HOST is not set, reset codes are only logged")
		return mail.NewLogMailer(logger)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     s.SMTPHost,
		Port:     s.SMTPPort,
		Username: s.SMTPUsername,
		Password: s.SMTPPassword,
		From:     s.MailFrom,
	})
}

func shutdownScheduler(scheduler gocron.Scheduler, logger *zap.Logger) {
	if err := scheduler.Shutdown(); err != nil {
		logger.Error("err shutting down scheduler", zap.Error(err))
	}
}

func setupEcho(logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.Use(
		middleware.Recover(),
		handler.RequestLogger(logger),
		middleware.CORSWithConfig(internal.GetCORSConfig(internal.Config)),
		middleware.RateLimiterWithConfig(internal.GetRateLimiterConfig(internal.Config)),
		middleware.BodyLimit(internal.Config.BodyLimit()),
	)
	return e
}
