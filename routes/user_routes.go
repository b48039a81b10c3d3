package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	mw "github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/rmiddleware"
)

func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	userRepo := user.NewUserRepository(db)
	userController := user.NewUserController(userRepo)

	admin := router.Group("/admin/users")
	admin.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db), rmiddleware.AdminMiddleware())
	{
		admin.GET("", userController.GetAllUsers)
		admin.GET("/:id", userController.GetUserByID)
		admin.DELETE("/:id", userController.DeleteUser)
		admin.DELETE("", userController.DeleteUsers)
	}
}
