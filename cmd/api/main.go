package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gignest/gignest_backend/internal/config"
	"github.com/gignest/gignest_backend/internal/db"
	"github.com/gignest/gignest_backend/internal/gigflow"
	"github.com/gignest/gignest_backend/internal/handlers"
	"github.com/gignest/gignest_backend/internal/logging"
	"github.com/gignest/gignest_backend/internal/metrics"
	"github.com/gignest/gignest_backend/internal/middleware"
	"github.com/gignest/gignest_backend/internal/models"
	"github.com/gignest/gignest_backend/internal/notify"
	"github.com/gignest/gignest_backend/internal/realtime"
	gigsvc "github.com/gignest/gignest_backend/internal/services/gig"
	"github.com/gignest/gignest_backend/internal/services/moderation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Gig{},
		&models.Transaction{},
		&models.Notification{},
		&models.Post{},
		&models.Review{},
	); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}

	hub := realtime.NewHub(logger)
	go hub.Run()

	bridge := realtime.NewBridge(rdb, hub, logger)
	go bridge.Run(context.Background())

	metrics.Register()

	policy := gigflow.Policy{
		GateEnforced:         cfg.GateEnforced,
		AutoRejectApplicants: cfg.AutoRejectApplicants,
		PaymentRequestCap:    cfg.PaymentRequestCap,
	}
	notifier := notify.NewService(gdb, bridge, logger)
	gigService := gigsvc.NewService(gdb, policy, notifier, logger)
	modService := moderation.NewService(gdb, notifier, logger)

	authH := &handlers.AuthHandler{DB: gdb, JWTSecret: cfg.JWTSecret, Expires: cfg.JWTExpiresMin}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		Log:             logger,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	gigH := handlers.NewGigHandler(gigService, logger)
	reportH := handlers.NewReportHandler(gigService, logger, cfg.UploadDir, cfg.AppBaseURL)
	paymentH := handlers.NewPaymentHandler(gigService, logger)
	reviewH := handlers.NewReviewHandler(gigService)
	postH := handlers.NewPostHandler(gdb)
	notifH := handlers.NewNotificationHandler(gdb)
	adminH := handlers.NewAdminHandler(gdb, modService, logger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))
	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Static("/uploads", cfg.UploadDir)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/ws/updates", websocket.New(handlers.WebSocketHandler(hub, cfg.JWTSecret, logger)))

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/gigs", gigH.ListOpen)
	api.Get("/posts", postH.ListPosts)
	api.Get("/students/:studentId/reviews", reviewH.ListForStudent)

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", authH.Me)
	protected.Get("/gigs/:id", gigH.GetGig)
	protected.Get("/notifications", notifH.List)
	protected.Patch("/notifications/read-all", notifH.MarkAllRead)
	protected.Patch("/notifications/:id/read", notifH.MarkRead)
	protected.Get("/transactions", paymentH.ListTransactions)

	// client
	protected.Post("/gigs",
		middleware.RequireRoles("client"), gigH.CreateGig)
	protected.Get("/client/gigs",
		middleware.RequireRoles("client"), gigH.ListMine)
	protected.Patch("/gigs/:id/resource-link",
		middleware.RequireRoles("client"), gigH.SetResourceLink)
	protected.Patch("/gigs/:id/application-requests/:studentId",
		middleware.RequireRoles("client"), gigH.ResolveRequest)
	protected.Patch("/gigs/:id/applicants/:studentId",
		middleware.RequireRoles("client"), gigH.DecideApplicant)
	protected.Patch("/gigs/:id/reports/:number/review",
		middleware.RequireRoles("client"), reportH.ReviewReport)
	protected.Post("/gigs/:id/payment",
		middleware.RequireRoles("client"), paymentH.RecordPayment)
	protected.Post("/gigs/:id/review",
		middleware.RequireRoles("client"), reviewH.LeaveReview)

	// client or admin
	protected.Patch("/gigs/:id/close",
		middleware.RequireRoles("client", "admin"), gigH.CloseGig)

	// student
	protected.Get("/student/gigs",
		middleware.RequireRoles("student"), gigH.ListAssigned)
	protected.Post("/gigs/:id/application-requests",
		middleware.RequireRoles("student"), gigH.RequestToApply)
	protected.Post("/gigs/:id/applicants",
		middleware.RequireRoles("student"), gigH.Apply)
	protected.Post("/gigs/:id/reports/:number",
		middleware.RequireRoles("student"), reportH.SubmitReport)
	protected.Post("/gigs/:id/payment-requests",
		middleware.RequireRoles("student"), paymentH.RequestPayment)
	protected.Post("/posts",
		middleware.RequireRoles("student"), postH.CreatePost)
	protected.Delete("/posts/:id", postH.DeletePost)

	// admin
	protected.Post("/gigs/:id/release",
		middleware.RequireRoles("admin"), paymentH.FinalizeRelease)
	protected.Patch("/admin/users/:id/ban",
		middleware.RequireRoles("admin"), adminH.SetBan)
	protected.Get("/admin/users",
		middleware.RequireRoles("admin"), adminH.ListUsers)

	logger.Info("listening", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
