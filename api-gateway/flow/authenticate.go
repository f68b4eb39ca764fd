package flow

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/auth"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

const (
	userService      = "user-service"
	authenticatePath = "/api/credentials/authenticate"
)

// Authenticator checks credentials at the user service and issues a JWT
type Authenticator struct {
	caller Caller
	tokens *auth.Manager
}

func NewAuthenticator(caller Caller, tokens *auth.Manager) *Authenticator {
	return &Authenticator{caller: caller, tokens: tokens}
}

// Handle answers POST /api/authenticate with {"jwtToken": ...}
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	var in dto.Authentication
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := server.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.UserContext()
	body, stepErr := encode(ctx, "authenticate", in)
	if stepErr != nil {
		return respondStepError(c, stepErr, nil)
	}

	raw, stepErr := step(ctx, a.caller, "authenticate", http.MethodPost, userService, authenticatePath, body)
	if stepErr != nil {
		if stepErr.Status == http.StatusUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "bad credentials"})
		}
		return respondStepError(c, stepErr, nil)
	}

	identity := gjson.ParseBytes(raw)
	userID := identity.Get("userId")
	if !userID.Exists() {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "user service returned no identity"})
	}

	token, err := a.tokens.GenerateToken(int(userID.Int()), identity.Get("username").String(), identity.Get("roleBasedAuthority").String())
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to issue token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue token"})
	}

	logger.Info(ctx).
		Int64("user_id", userID.Int()).
		Msg("User authenticated")
	return c.JSON(dto.Token{JWTToken: token})
}
