package turf

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	mw "github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/rmiddleware"
)

func RegisterTurfRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, stats OwnerStatsProvider) {
	turfRepo := NewTurfRepository(db)
	turfController := NewTurfController(turfRepo, stats, appConfig)

	public := router.Group("/turfs/public")
	{
		public.GET("", turfController.GetAllActiveTurfs)
		public.GET("/paginated", turfController.GetAllActiveTurfsPaginated)
		public.GET("/search", turfController.SearchTurfsByLocation)
		public.GET("/filter", turfController.FilterTurfs)
		public.GET("/:id", turfController.GetTurfByID)
	}

	authenticated := router.Group("/turfs")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		ownerOrAdmin := authenticated.Group("")
		ownerOrAdmin.Use(rmiddleware.OwnerOrAdminMiddleware())
		{
			ownerOrAdmin.POST("", turfController.CreateTurf)
			ownerOrAdmin.GET("/my-turfs", turfController.GetMyTurfs)
			ownerOrAdmin.GET("/my-turfs/stats", turfController.GetMyTurfsStats)
			ownerOrAdmin.PUT("/:id", turfController.UpdateTurf)
			ownerOrAdmin.DELETE("/:id", turfController.DeleteTurf)
		}

		admin := authenticated.Group("")
		admin.Use(rmiddleware.AdminMiddleware())
		{
			admin.GET("/admin/pending", turfController.ListPendingTurfs)
			admin.PUT("/:id/approve", turfController.ApproveTurf)
			admin.PUT("/:id/reject", turfController.RejectTurf)
		}
	}
}
