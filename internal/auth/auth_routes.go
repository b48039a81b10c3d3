package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	mw "github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	userRepo := user.NewUserRepository(db)
	authController := NewAuthController(userRepo, appConfig)

	public := router.Group("/auth")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/google", authController.GoogleLogin)
		public.GET("/google/callback", authController.GoogleCallback)
	}

	authenticated := router.Group("/auth")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authenticated.GET("/profile", authController.GetProfile)
		authenticated.PUT("/profile", authController.UpdateProfile)
		authenticated.PUT("/change-password", authController.ChangePassword)
		authenticated.GET("/validate", authController.ValidateToken)
		authenticated.POST("/logout", authController.Logout)
	}
}
