package sitesetting

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	mw "github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/rmiddleware"
)

func RegisterSettingRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	settingRepo := NewSettingRepository(db)
	settingController := NewSettingController(settingRepo)

	public := router.Group("/settings")
	{
		public.GET("", settingController.GetAllSettings)
		public.GET("/map", settingController.GetSettingsMap)
		public.GET("/:key", settingController.GetSettingByKey)
	}

	admin := router.Group("/settings")
	admin.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db), rmiddleware.AdminMiddleware())
	{
		admin.PUT("", settingController.UpdateSettings)
		admin.PUT("/:key", settingController.UpdateSetting)
	}
}
