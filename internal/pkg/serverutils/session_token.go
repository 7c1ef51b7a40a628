package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/constant"
)

// SessionToken pulls the chat session token from the request header.
// Returns ErrUnauthorized when the header is absent.
func SessionToken(ctx *fiber.Ctx) (string, error) {
	token := strings.TrimSpace(ctx.Get(constant.SessionTokenHeader))
	if token == "" {
		return "", ErrUnauthorized
	}
	return token, nil
}
