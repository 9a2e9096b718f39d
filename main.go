package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/meinhoongagan/servicehub/config"
	"github.com/meinhoongagan/servicehub/controllers"
	"github.com/meinhoongagan/servicehub/cron"
	"github.com/meinhoongagan/servicehub/db"
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/middleware"
	"github.com/meinhoongagan/servicehub/notify"
	"github.com/meinhoongagan/servicehub/redis"
	"github.com/meinhoongagan/servicehub/routes"
	"github.com/meinhoongagan/servicehub/storage"
	"github.com/meinhoongagan/servicehub/utils"
)

// Ten 5MB images plus the form fields.
const bodyLimit = 55 * 1024 * 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.Connect(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to database")
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate database")
	}

	rdb, err := redis.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to redis")
	}
	if rdb == nil {
		logger.Log.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}
	tokens := redis.NewTokenStore(rdb)

	images, err := imageStore(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to set up image storage")
	}

	h := controllers.NewHandler(gdb)
	h.Images = images
	h.Tokens = tokens
	h.Notifier = notifier(cfg)
	h.JWTSecret = []byte(cfg.JWTSecret)
	h.JWTTTL = cfg.JWTTTL
	h.Location = cfg.Location()

	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(logger.Middleware())

	prom := fiberprometheus.New("servicehub")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Static(storage.PublicPrefix, cfg.UploadDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Service hub API is running")
	})

	protected := middleware.Protected(h.JWTSecret, h.Users, tokens)
	routes.Setup(app, h, protected)

	app.Use(func(c *fiber.Ctx) error {
		return utils.Fail(c, utils.NotFound("Route not found"))
	})

	scheduler, err := cron.Start(cfg.SweepSchedule, cfg.ReminderSchedule, &cron.Jobs{
		Appointments: h.Appointments,
		FileRemovals: h.FileRemovals,
		Images:       h.Images,
		Notifier:     h.Notifier,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start cron jobs")
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Log.WithError(err).Fatal("server stopped")
		}
	}()
	logger.Log.WithField("port", cfg.Port).Info("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.WithError(err).Error("server shutdown")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Log.WithError(err).Error("close redis")
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Log.WithError(err).Error("close database")
	}
}

func imageStore(cfg *config.Config) (storage.ImageStore, error) {
	if cfg.UploadBackend == "cloudinary" {
		return storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadPreset)
	}
	return storage.NewDiskStore(cfg.UploadDir), nil
}

// notifier fans out to every configured channel.
func notifier(cfg *config.Config) notify.Notifier {
	var out notify.Multi
	if cfg.SMTPHost != "" {
		out = append(out, notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.AdminEmail))
	}
	if cfg.RabbitMQURL != "" {
		out = append(out, notify.NewAMQPPublisher(cfg.RabbitMQURL))
	}
	if len(out) == 0 {
		return notify.Nop{}
	}
	return out
}

// errorHandler renders errors that escape the handlers, fiber's own
// included, in the usual error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(utils.ErrorResponse{Success: false, Error: fe.Message})
	}
	return utils.Fail(c, err)
}
