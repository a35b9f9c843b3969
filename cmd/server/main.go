package main

import (
	"github.com/benbeisheim/chess-analysis-backend/internal/config"
	"github.com/benbeisheim/chess-analysis-backend/internal/controller"
	"github.com/benbeisheim/chess-analysis-backend/internal/service"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(cfg, gameService)

	log.Infof("analysis server listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
