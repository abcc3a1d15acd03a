package controller

import (
	"os"
	"strconv"

	"opx-assistant-be/internal/dto"
	"opx-assistant-be/internal/pkg/serverutils"
	"opx-assistant-be/internal/service"
	internalWS "opx-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Command(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	hub              *internalWS.Hub
}

func NewAssistantController(assistantService service.IAssistantService, hub *internalWS.Hub) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		hub:              hub,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	// The ws handshake authenticates via query token, browsers cannot
	// set an Authorization header on websocket upgrades.
	h.Get("ws", c.ServeWs)
	h.Use(serverutils.JwtMiddleware)
	h.Post("command", c.Command)
	h.Get("history", c.History)
}

func (c *assistantController) Command(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.CommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.ProcessCommand(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process command", res))
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	res, err := c.assistantService.History(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show history", res))
}

func (c *assistantController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeWs(c.hub, conn, userId)
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
