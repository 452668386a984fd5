package main

import (
	"log"

	"superfamily/internal/activitylog"
	"superfamily/internal/auth"
	"superfamily/internal/config"
	"superfamily/internal/database"
	"superfamily/internal/handlers"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *database.DB

	// Handlers
	AuthHandler        *handlers.AuthHandler
	AccountHandler     *handlers.AccountHandler
	FamilyHandler      *handlers.FamilyHandler
	CategoryHandler    *handlers.CategoryHandler
	TransactionHandler *handlers.TransactionHandler
	DashboardHandler   *handlers.DashboardHandler

	// Auth
	JWT *auth.JWT

	// Activity log sink
	Sink *activitylog.Sink

	// Repositories (for scheduler job provider)
	InviteRepo *database.InviteRepository
	LogRepo    *database.LogRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := database.NewUserRepository(db)
	familyRepo := database.NewFamilyRepository(db)
	categoryRepo := database.NewCategoryRepository(db)
	transactionRepo := database.NewTransactionRepository(db)
	logRepo := database.NewLogRepository(db)
	inviteRepo := database.NewInviteRepository(db)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshExpiresIn)

	// Activity writes go through a bounded queue so request handlers never
	// block on the log table.
	sink := activitylog.NewSink(logRepo, cfg.Log.Workers, cfg.Log.QueueSize)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, jwt)
	accountHandler := handlers.NewAccountHandler(userRepo, familyRepo, inviteRepo, sink)
	familyHandler := handlers.NewFamilyHandler(familyRepo, userRepo, inviteRepo, sink, cfg.Server.BaseURL)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, sink)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo, categoryRepo, userRepo, sink)
	dashboardHandler := handlers.NewDashboardHandler(transactionRepo, userRepo)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        authHandler,
		AccountHandler:     accountHandler,
		FamilyHandler:      familyHandler,
		CategoryHandler:    categoryHandler,
		TransactionHandler: transactionHandler,
		DashboardHandler:   dashboardHandler,
		JWT:                jwt,
		Sink:               sink,
		InviteRepo:         inviteRepo,
		LogRepo:            logRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
