package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	"github.com/yagnamodi22/book-by-truf-backend/internal/auth"
	"github.com/yagnamodi22/book-by-truf-backend/internal/booking"
	"github.com/yagnamodi22/book-by-truf-backend/internal/sitesetting"
	"github.com/yagnamodi22/book-by-truf-backend/internal/turf"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
)

// SetupRoutes builds the gin engine with CORS, swagger and every feature's
// route group mounted under /api.
func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			appConfig.App.FrontendURL,
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "turf-booking-backend",
			"docs":    "/swagger/index.html",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	bookingService := booking.NewService(
		booking.NewBookingRepository(db),
		turf.NewTurfRepository(db),
		user.NewUserRepository(db),
	)

	auth.RegisterAuthRoutes(api, db, appConfig)
	RegisterUserRoutes(api, db, appConfig)
	turf.RegisterTurfRoutes(api, db, appConfig, bookingService)
	booking.RegisterBookingRoutes(api, db, appConfig, bookingService)
	sitesetting.RegisterSettingRoutes(api, db, appConfig)

	return r
}
