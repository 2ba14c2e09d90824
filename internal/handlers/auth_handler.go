package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.winapps.traveljournal/internal/apperr"
	"io.winapps.traveljournal/internal/auth"
	"io.winapps.traveljournal/internal/middleware"
	models "io.winapps.traveljournal/internal/models/account"
	authmodels "io.winapps.traveljournal/internal/models/auth"
)

const profileCacheTTL = 24 * time.Hour

type AuthHandler struct {
	users  UserStore
	tokens *auth.TokenManager
	redis  *redis.Client
	logger *zap.SugaredLogger
}

// NewAuthHandler creates a new authentication handler. redisClient may be nil,
// which disables profile caching.
func NewAuthHandler(users UserStore, tokens *auth.TokenManager, redisClient *redis.Client, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		redis:  redisClient,
		logger: logger,
	}
}

// Register handles new account creation. The password arrives in plaintext and
// only its bcrypt digest is stored.
func (h *AuthHandler) Register(c *gin.Context) {
	var req authmodels.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Validate required fields
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logError(c, h.logger, err, "failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if _, err := h.users.CreateUser(c.Request.Context(), req.Username, req.Email, hash); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login verifies the password and issues a signed bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authmodels.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.users.FindUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			// Same response for unknown user and wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondError(c, h.logger, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		logError(c, h.logger, err, "failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create authentication token"})
		return
	}

	h.cacheUser(c.Request.Context(), user)

	c.JSON(http.StatusOK, authmodels.LoginResponse{AccessToken: token})
}

// ResetPassword acknowledges the request without doing anything. Placeholder:
// mail delivery is out of scope.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, password reset instructions will be sent"})
}

// Profile returns the authenticated user's id, username and email.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()

	if user, ok := h.cachedUser(ctx, userID); ok {
		c.JSON(http.StatusOK, authmodels.ProfileResponse{ID: user.ID, Username: user.Username, Email: user.Email})
		return
	}

	user, err := h.users.FindUserByID(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.cacheUser(ctx, user)

	c.JSON(http.StatusOK, authmodels.ProfileResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

// cacheUser stores the user in Redis, best-effort. PasswordHash is excluded by
// its json tag.
func (h *AuthHandler) cacheUser(ctx context.Context, user *models.User) {
	if h.redis == nil {
		return
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return
	}
	key := fmt.Sprintf("user:%d", user.ID)
	if err := h.redis.Set(ctx, key, userJSON, profileCacheTTL).Err(); err != nil && h.logger != nil {
		h.logger.Warnw("failed to cache user", "key", key, "error", err)
	}
}

func (h *AuthHandler) cachedUser(ctx context.Context, userID int64) (*models.User, bool) {
	if h.redis == nil {
		return nil, false
	}
	raw, err := h.redis.Get(ctx, fmt.Sprintf("user:%d", userID)).Result()
	if err != nil {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}
