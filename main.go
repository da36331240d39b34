package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/restohub/restopos/config"
	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/router"
	"github.com/restohub/restopos/services"
	"github.com/restohub/restopos/utils"
	"github.com/restohub/restopos/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	utils.InitLogger()

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Area{},
		&models.Table{},
		&models.Category{},
		&models.Item{},
		&models.ItemUnit{},
		&models.ItemStock{},
		&models.OrderCounter{},
		&models.Order{},
		&models.OrderItem{},
		&models.KOT{},
		&models.KOTItem{},
		&models.Receipt{},
		&models.ReceiptItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("migrate: %v", err)
	}

	hub := ws.NewHub()
	printer := services.NewPDFPrinter(cfg.PrintsDir)
	orderService := services.NewOrderService(db, hub, printer)

	r := router.SetupRouter(db, hub, orderService, printer)

	utils.InfoLogger.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("server: %v", err)
	}
}
