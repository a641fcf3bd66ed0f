package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "verification-platform/internal/adapter/http"
	mw "verification-platform/internal/adapter/middleware"
	"verification-platform/internal/adapter/ocr"
	"verification-platform/internal/adapter/repository/mysql"
	"verification-platform/internal/adapter/repository/redisstore"
	"verification-platform/internal/config"
	"verification-platform/internal/infrastructure/cache"
	"verification-platform/internal/infrastructure/db"
	"verification-platform/internal/infrastructure/logging"
	"verification-platform/internal/infrastructure/metrics"
	"verification-platform/internal/infrastructure/ocr/tesseract"
	"verification-platform/internal/infrastructure/pdf"
	ucAccount "verification-platform/internal/usecase/account"
	ucSession "verification-platform/internal/usecase/session"
	ucVerification "verification-platform/internal/usecase/verification"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.AppEnv, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	dsn := cfg.MySQLDSN()
	if cfg.DBDriver == "sqlite" {
		dsn = cfg.SQLitePath
	}
	gdb, err := db.OpenGorm(cfg.DBDriver, dsn, log)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("migrate database")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("open redis")
	}
	defer rdb.Close()

	var recognizer ocr.TextRecognizer
	switch cfg.OCREngine {
	case "static":
		recognizer = ocr.NewStaticRecognizer("")
	default:
		recognizer = tesseract.New(cfg.OCRLanguages, cfg.OCRPSM)
		log.WithField("version", tesseract.Version()).Info("tesseract loaded")
	}

	m := metrics.New()
	accounts := ucAccount.NewUsecase(mysql.NewAccountRepository(gdb), log)
	if err := accounts.EnsureAccount(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.WithError(err).Fatal("bootstrap account")
	}
	verifier := ucVerification.NewUsecase(m, log)
	sessions := ucSession.NewUsecase(
		redisstore.NewSessionStore(rdb),
		accounts,
		ocr.NewDocumentExtractor(recognizer, log).WithPages(pdf.New()),
		verifier,
		m,
		log,
		cfg.SessionTTL,
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestID(), mw.RequestLogger(log), middleware.Recover())

	httpadp.Register(e, httpadp.Routes{
		Health:       httpadp.NewHandler(m.Handler()),
		Sessions:     httpadp.NewSessionHandler(sessions, log, cfg.MaxUploadBytes),
		Verification: httpadp.NewVerificationHandler(verifier, log),
		Idempotency:  mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log),
	})

	go func() {
		addr := ":" + cfg.AppPort
		log.WithFields(logrus.Fields{"addr": addr, "ocr_engine": recognizer.Name()}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdown); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
