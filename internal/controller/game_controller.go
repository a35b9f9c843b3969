package controller

import (
	"errors"

	"github.com/benbeisheim/chess-analysis-backend/internal/model"
	"github.com/benbeisheim/chess-analysis-backend/internal/service"
	"github.com/benbeisheim/chess-analysis-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Get("/", gc.ListGames)
	router.Post("/create", gc.CreateGame)
	router.Post("/setup", gc.SetupGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Get("/:gameId/moves", gc.LegalMoves)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/undo", gc.Undo)
	router.Delete("/:gameId", gc.DeleteGame)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidSetup), errors.Is(err, service.ErrInvalidPromotion):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNothingToUndo):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) SetupGame(c *fiber.Ctx) error {
	var req service.SetupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid setup payload",
		})
	}

	gameID, err := gc.gameService.SetupGame(req)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(),
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

// MakeMove answers 200 for done moves and 422 for rejected ones; both carry
// the move status and the game state.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move payload",
		})
	}

	clientID, _ := c.Locals("clientID").(string)
	result, err := gc.gameService.HandleMove(c.Params("gameId"), clientID, move)
	if err != nil {
		return sendError(c, err)
	}
	if !result.Status.IsDone() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.JSON(result)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	state, err := gc.gameService.Undo(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
