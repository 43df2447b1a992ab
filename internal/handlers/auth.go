package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvaldez/projecttracker/internal/config"
	"github.com/mvaldez/projecttracker/internal/services"
	"github.com/mvaldez/projecttracker/internal/store"
	"github.com/mvaldez/projecttracker/internal/utils"
	"github.com/mvaldez/projecttracker/pkg/response"
)

type AuthHandler struct {
	identity *store.IdentityStore
	activity *services.ActivityService
	jwtCfg   *config.JWTConfig
}

func NewAuthHandler(identity *store.IdentityStore, activity *services.ActivityService, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{identity: identity, activity: activity, jwtCfg: jwtCfg}
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Rank       string `json:"rank"`
}

type LoginResponse struct {
	Token    string          `json:"token"`
	User     *store.Identity `json:"user"`
	ExpireAt time.Time       `json:"expire_at"`
}

// Login handles the mock credential check
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ok := h.identity.Login(req.Identifier, req.Password, store.LoginOptions{
		Name:   req.Name,
		Avatar: req.Avatar,
		Rank:   req.Rank,
	})
	if !ok {
		h.activity.Record("warning", "auth", "login_failed", "login rejected for "+req.Identifier, "", c.ClientIP(), nil)
		response.Unauthorized(c, "invalid credentials")
		return
	}

	user := h.identity.Current()
	token, err := utils.GenerateToken(user.Username, user.Rank, h.jwtCfg.ExpireHour)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	h.activity.Record("info", "auth", "login", user.Username+" logged in", user.Username, c.ClientIP(), nil)

	response.Success(c, LoginResponse{
		Token:    token,
		User:     user,
		ExpireAt: time.Now().Add(time.Duration(h.jwtCfg.ExpireHour) * time.Hour),
	})
}

// GetCurrentUser returns the current session identity
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user := h.identity.Current()
	if user == nil {
		response.NotFound(c, "no active session")
		return
	}
	response.Success(c, user)
}

// UpdateProfile merges fields into the current identity
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req store.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !h.identity.UpdateProfile(req) {
		response.Unauthorized(c, "no active session")
		return
	}

	response.Success(c, h.identity.Current())
}

// Logout clears the session and resets the theme preference
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	username := ""
	if user := h.identity.Current(); user != nil {
		username = user.Username
	}

	h.identity.Logout()

	h.activity.Record("info", "auth", "logout", username+" logged out", username, c.ClientIP(), nil)
	response.Success(c, gin.H{"message": "logged out successfully"})
}

// GetOptions returns the fixed avatar and rank choices for the login and
// profile pages
// GET /api/auth/options
func (h *AuthHandler) GetOptions(c *gin.Context) {
	response.Success(c, gin.H{
		"avatars": store.Avatars,
		"ranks":   store.Ranks,
	})
}
