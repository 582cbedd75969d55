package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/config"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/db"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/handler"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/middleware"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/model"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/mongo"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/notify"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/repository"
	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/service"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := db.RunMigrations(conn, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	mongoClient := mongo.NewClient(cfg.MongoURI)

	listingRepo := repository.NewListingRepository(conn)
	proofRepo := repository.NewProofRepository(conn)
	unlockRepo := repository.NewUnlockRepository(conn)
	statsRepo := repository.NewStatsRepository(conn)
	receiptRepo := repository.NewReceiptRepository(mongoClient, cfg.MongoDB)

	listingSvc := service.NewListingService(listingRepo)
	accessSvc := service.NewAccessService(unlockRepo)
	proofSvc := service.NewProofService(proofRepo, listingRepo, unlockRepo, cfg.AccessFee)
	reviewSvc := service.NewReviewService(proofRepo, notify.LogNotifier{})
	statsSvc := service.NewStatsService(statsRepo, cfg.AccessFee)

	lh := &handler.ListingHandler{Listings: listingSvc, Access: accessSvc}
	ph := &handler.ProofHandler{Proofs: proofSvc, Review: reviewSvc, Access: accessSvc}
	sh := &handler.StatsHandler{Stats: statsSvc}
	rh := &handler.ReceiptHandler{Receipts: receiptRepo}

	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Open routes. The listing detail route reads an optional token so
	// the access service can pick the right projection.
	api.GET("/listings", lh.Browse)
	api.GET("/listings/:id", middleware.OptionalAuth(cfg.JWTSecret), lh.Get)

	protected := api.Group("/")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	{
		protected.POST("/listings", lh.Create)
		protected.PATCH("/listings/:id", lh.Update)
		protected.PUT("/listings/:id/status", lh.SetStatus)
		protected.DELETE("/listings/:id", lh.Delete)
		protected.GET("/me/listings", lh.Mine)

		protected.POST("/proofs", ph.Submit)
		protected.GET("/me/proofs", ph.ListMine)
		protected.GET("/me/unlocked", ph.Unlocked)

		protected.POST("/receipts", rh.Upload)
		protected.GET("/receipts/:id", rh.Download)

		protected.GET("/owners/:id/stats", sh.OwnerStats)

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/proofs/pending", ph.ListPending)
			admin.PATCH("/proofs/:id/review", ph.ReviewProof)
		}
	}

	log.Printf("Housing platform running on :%s …", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
