package command

import (
	"context"
	"fmt"

	"github.com/tair/ai-goat-store/pkg/auth"
	"github.com/tair/ai-goat-store/pkg/logger"
)

// LoginSuccessMessage is returned with every issued token
const LoginSuccessMessage = `Login successful for {"user_id": 1}`

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	credentials auth.CredentialStore
	tokens      *auth.TokenManager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(credentials auth.CredentialStore, tokens *auth.TokenManager) *LoginUserHandler {
	return &LoginUserHandler{credentials: credentials, tokens: tokens}
}

// Handle checks the credential store and issues a token for the username
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Username == "" || !h.credentials.Verify(cmd.Username, cmd.Password) {
		logger.Info(ctx).Str("username", cmd.Username).Msg("Login rejected")
		return nil, auth.ErrInvalidCredentials
	}

	token, err := h.tokens.GenerateToken(cmd.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info(ctx).Str("username", cmd.Username).Msg("Login successful")
	return &LoginResponse{
		Message: LoginSuccessMessage,
		Token:   token,
	}, nil
}
