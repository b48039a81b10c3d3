package sitesetting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yagnamodi22/book-by-truf-backend/pkg/responses"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/validator"
)

type SettingController struct {
	repo SettingRepository
}

func NewSettingController(repo SettingRepository) *SettingController {
	return &SettingController{repo: repo}
}

// @Summary      List all site settings
// @Tags         Settings
// @Produce      json
// @Success      200 {array} SiteSetting
// @Router       /settings [get]
func (sc *SettingController) GetAllSettings(c *gin.Context) {
	settings, err := sc.repo.FindAll()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary      Site settings as a key-value map
// @Tags         Settings
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /settings/map [get]
func (sc *SettingController) GetSettingsMap(c *gin.Context) {
	settings, err := sc.repo.FindAll()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch settings")
		return
	}
	m := make(map[string]string, len(settings))
	for _, s := range settings {
		m[s.SettingKey] = s.SettingValue
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Get a setting by key
// @Tags         Settings
// @Produce      json
// @Param        key path string true "Setting key"
// @Success      200 {object} SiteSetting
// @Failure      404 {object} responses.ErrorResponse
// @Router       /settings/{key} [get]
func (sc *SettingController) GetSettingByKey(c *gin.Context) {
	key := c.Param("key")
	s, err := sc.repo.FindByKey(key)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch setting")
		return
	}
	if s == nil {
		responses.NotFound(c, "Setting")
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Set a single setting
// @Tags         Settings
// @Produce      json
// @Param        key path string true "Setting key"
// @Param        value query string true "Setting value"
// @Security     BearerAuth
// @Success      200 {object} SiteSetting
// @Router       /settings/{key} [put]
func (sc *SettingController) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	value, ok := c.GetQuery("value")
	if !ok {
		responses.BadRequest(c, "value query parameter is required")
		return
	}
	s, err := sc.repo.Upsert(key, value)
	if err != nil {
		responses.InternalServerError(c, "Failed to update setting")
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Replace several settings at once
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings body UpdateSettingsRequest true "Settings to set"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /settings [put]
func (sc *SettingController) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}
	if err := sc.repo.UpsertAll(req.Settings); err != nil {
		responses.InternalServerError(c, "Failed to update settings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Settings updated successfully", nil)
}
