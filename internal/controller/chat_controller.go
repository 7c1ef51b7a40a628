package controller

import (
	"context"
	"encoding/json"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/dto"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/logger"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/pkg/serverutils"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	RegisterWebsocket(app *fiber.App)
	SendMessage(ctx *fiber.Ctx) error
	GetTurn(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, logger logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		logger:      logger,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.SendMessage)
	h.Get("/turns/:id", c.GetTurn)
	h.Get("/history", c.GetHistory)
}

// RegisterWebsocket mounts the live chat endpoint outside the /api group
// since the upgrade handshake bypasses the JSON middleware stack.
func (c *chatController) RegisterWebsocket(app *fiber.App) {
	app.Use("/chat/v1/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/chat/v1/ws", websocket.New(c.serveWs))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	token, err := serverutils.SessionToken(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), token, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetTurn(ctx *fiber.Ctx) error {
	token, err := serverutils.SessionToken(ctx)
	if err != nil {
		return err
	}

	turnId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.ErrTurnNotFound
	}

	res, err := c.chatService.GetTurn(ctx.Context(), token, turnId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show turn", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	token, err := serverutils.SessionToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetHistory(ctx.Context(), token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show history", res))
}

type wsError struct {
	Error string `json:"error"`
}

// serveWs runs a full conversation over one socket. Each inbound frame is
// a SendMessageRequest, each outbound frame the turn result.
func (c *chatController) serveWs(conn *websocket.Conn) {
	defer conn.Close()

	token := conn.Query("token")
	if token == "" {
		token = conn.Headers("X-Session-Token")
	}
	if token == "" {
		_ = conn.WriteJSON(wsError{Error: "missing session token"})
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req dto.SendMessageRequest
		if err := json.Unmarshal(raw, &req); err != nil || req.Message == "" {
			_ = conn.WriteJSON(wsError{Error: "invalid message payload"})
			continue
		}

		res, err := c.chatService.SendMessage(context.Background(), token, &req)
		if err != nil {
			c.logger.Warn("chat-ws", "turn failed", map[string]interface{}{"error": err.Error()})
			_ = conn.WriteJSON(wsError{Error: err.Error()})
			continue
		}

		if err := conn.WriteJSON(res); err != nil {
			return
		}
	}
}
