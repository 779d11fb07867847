package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/ai-goat-store/internal/user/domain"
	"github.com/tair/ai-goat-store/internal/user/usecase/command"
	"github.com/tair/ai-goat-store/internal/user/usecase/query"
	"github.com/tair/ai-goat-store/pkg/auth"
	"github.com/tair/ai-goat-store/pkg/logger"
	"github.com/tair/ai-goat-store/pkg/middleware"
)

var loginAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_login_attempts_total",
		Help: "Login attempts by outcome",
	},
	[]string{"outcome"},
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	// Command handlers
	loginHandler           *command.LoginUserHandler
	recommendationsHandler *command.RefreshRecommendationsHandler

	// Query handlers
	cartHandler *query.GetCartHandler

	tokens *auth.TokenManager
}

// NewUserHandler creates a new user handler; used by Wire
func NewUserHandler(
	loginHandler *command.LoginUserHandler,
	recommendationsHandler *command.RefreshRecommendationsHandler,
	cartHandler *query.GetCartHandler,
	tokens *auth.TokenManager,
) *UserHandler {
	return &UserHandler{
		loginHandler:           loginHandler,
		recommendationsHandler: recommendationsHandler,
		cartHandler:            cartHandler,
		tokens:                 tokens,
	}
}

// MessageResponse is the body used by the login and token checks
type MessageResponse struct {
	Message string `json:"message"`
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	requireToken := AuthMiddleware(h.tokens)

	router.HandleFunc("/api/login", middleware.Metrics("/api/login", h.Login)).Methods("POST")
	router.HandleFunc("/api/recommendations", middleware.Metrics("/api/recommendations", requireToken(h.GetRecommendations))).Methods("GET")
	router.HandleFunc("/api/cart", middleware.Metrics("/api/cart", requireToken(h.GetCart))).Methods("GET")
}

// Login handles POST /api/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		loginAttempts.WithLabelValues("rejected").Inc()
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		loginAttempts.WithLabelValues("error").Inc()
		logger.Error(r.Context()).Err(err).Msg("Error during login")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	loginAttempts.WithLabelValues("success").Inc()
	respondJSON(w, http.StatusOK, resp)
}

// GetRecommendations handles GET /api/recommendations
func (h *UserHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	username, _ := UsernameFromContext(r.Context())

	products, err := h.recommendationsHandler.Handle(r.Context(), command.RefreshRecommendationsCommand{Username: username})
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		logger.Error(r.Context()).Err(err).Msg("Error getting recommendations")
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("Failed to get recommendations: %v", err),
		})
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GetCart handles GET /api/cart
func (h *UserHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	username, _ := UsernameFromContext(r.Context())

	products, err := h.cartHandler.Handle(r.Context(), query.GetCartQuery{Username: username})
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		logger.Error(r.Context()).Err(err).Msg("Error fetching cart")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}
