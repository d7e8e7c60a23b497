package main

import (
	"context"
	"log"
	"os"

	"techmarket/internal/ai"
	"techmarket/internal/config"
	"techmarket/internal/logger"
	"techmarket/internal/mailer"
	"techmarket/internal/model"
	"techmarket/internal/payment"
	"techmarket/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	rd "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db, err := gorm.Open(sqlite.Open(cfg.DBPath+"?_journal_mode=WAL"), &gorm.Config{})
	if err != nil {
		zlog.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.Listing{}, &model.Order{}); err != nil {
		zlog.Fatal("db migrate", zap.Error(err))
	}
	if err := model.SeedListings(db); err != nil {
		zlog.Fatal("db seed", zap.Error(err))
	}

	var gw payment.OrderCreator = payment.MockGateway{}
	if cfg.PaymentConfigured() {
		gw = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		zlog.Warn("razorpay credentials absent, serving mock order handles")
	}

	var mail router.Notifier
	if cfg.MailConfigured() {
		mail = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.AdminEmail)
	} else {
		zlog.Warn("smtp not configured, order emails disabled")
	}

	aiSvc, err := ai.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.VideoPollInterval, cfg.VideoPollMaxAttempts)
	if err != nil {
		zlog.Fatal("gemini client", zap.Error(err))
	}

	var rdb *rd.Client
	if cfg.RateLimitEnabled() {
		rdb = rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger(zlog))
	router.Setup(r, db, gw, mail, aiSvc, rdb, cfg, zlog)

	zlog.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server", zap.Error(err))
	}
}
