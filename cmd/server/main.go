package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	httpapi "rentalops-backend/internal/api/http"
	"rentalops-backend/internal/config"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository/postgres"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalOps backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	signatures, err := storage.NewLocalSignatureStore(cfg.Storage.SignatureDir)
	if err != nil {
		logger.Error("Failed to initialize signature storage", "error", err)
		log.Fatalf("Failed to initialize signature storage: %v", err)
	}

	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	stockSvc := service.NewStockService(store.EquipmentRepository, store.RentalRepository)
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.EquipmentRepository, store.RouteRepository, stockSvc)
	routeSvc := service.NewRouteService(store.RouteRepository, store.RentalRepository, store.DriverRepository, stockSvc, emailSvc)
	driverSvc := service.NewDriverService(store.DriverRepository)

	router := httpapi.NewRouter(equipmentSvc, stockSvc, rentalSvc, routeSvc, driverSvc, signatures)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
