package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mvaldez/projecttracker/internal/store"
	"github.com/mvaldez/projecttracker/pkg/response"
)

type SettingsHandler struct {
	prefs *store.PreferenceStore
}

func NewSettingsHandler(prefs *store.PreferenceStore) *SettingsHandler {
	return &SettingsHandler{prefs: prefs}
}

// GetPreferences returns the current presentation preferences
// GET /api/settings/preferences
func (h *SettingsHandler) GetPreferences(c *gin.Context) {
	response.Success(c, h.prefs.Preferences())
}

type UpdatePreferencesRequest struct {
	Theme      *string `json:"theme"`
	ColorTheme *string `json:"colorTheme"`
}

// UpdatePreferences sets the theme and accent color
// PUT /api/settings/preferences
func (h *SettingsHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.Theme != nil {
		if !h.prefs.SetTheme(*req.Theme) {
			response.BadRequest(c, "unknown theme: "+*req.Theme)
			return
		}
	}
	if req.ColorTheme != nil {
		h.prefs.SetColorTheme(*req.ColorTheme)
	}

	response.Success(c, h.prefs.Preferences())
}

// CycleTheme advances light -> dark -> colorful -> light
// POST /api/settings/theme/cycle
func (h *SettingsHandler) CycleTheme(c *gin.Context) {
	theme := h.prefs.CycleTheme()
	response.Success(c, gin.H{"theme": theme})
}

// IncreaseFontSize bumps the font size one step
// POST /api/settings/font/increase
func (h *SettingsHandler) IncreaseFontSize(c *gin.Context) {
	response.Success(c, gin.H{"fontSize": h.prefs.IncreaseFontSize()})
}

// DecreaseFontSize lowers the font size one step
// POST /api/settings/font/decrease
func (h *SettingsHandler) DecreaseFontSize(c *gin.Context) {
	response.Success(c, gin.H{"fontSize": h.prefs.DecreaseFontSize()})
}
