package booking

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	mw "github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/internal/payment"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/rmiddleware"
)

// RegisterBookingRoutes mounts the booking endpoints. The service is built by
// the caller so other route groups can share it.
func RegisterBookingRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, service *Service) {
	paymentRepo := payment.NewPaymentRepository(db)
	bookingController := NewBookingController(service, paymentRepo)

	public := router.Group("/bookings")
	{
		public.GET("/availability", bookingController.CheckAvailability)
		public.GET("/booked-slots", bookingController.GetBookedSlots)
	}

	authenticated := router.Group("/bookings")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authenticated.POST("", bookingController.CreateBooking)
		authenticated.POST("/multiple", bookingController.CreateMultipleBookings)
		authenticated.GET("/my-bookings", bookingController.GetMyBookings)
		authenticated.GET("/my-bookings/range", bookingController.GetMyBookingsBetweenDates)
		authenticated.GET("/my-bookings/stats", bookingController.GetMyBookingStats)
		authenticated.GET("/:id", bookingController.GetBookingByID)
		authenticated.PUT("/:id/cancel", bookingController.CancelBooking)

		ownerOrAdmin := authenticated.Group("")
		ownerOrAdmin.Use(rmiddleware.OwnerOrAdminMiddleware())
		{
			ownerOrAdmin.POST("/offline", bookingController.CreateOfflineBooking)
			ownerOrAdmin.DELETE("/offline/:id", bookingController.DeleteOfflineBooking)
			ownerOrAdmin.GET("/offline/turf/:turfId", bookingController.GetOfflineBookingsByTurf)
			ownerOrAdmin.GET("/owner", bookingController.GetOwnerBookings)
			ownerOrAdmin.GET("/turf/:turfId", bookingController.GetBookingsByTurf)
			ownerOrAdmin.GET("/turf/:turfId/paginated", bookingController.GetBookingsByTurfPaginated)
			ownerOrAdmin.PUT("/:id/confirm", bookingController.ConfirmBooking)
		}

		admin := authenticated.Group("")
		admin.Use(rmiddleware.AdminMiddleware())
		{
			admin.PUT("/:id/status", bookingController.UpdateBookingStatus)
			admin.DELETE("/:id", bookingController.DeleteBooking)
		}
	}

	adminGroup := router.Group("/admin/bookings")
	adminGroup.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db), rmiddleware.AdminMiddleware())
	{
		adminGroup.GET("", bookingController.GetAllBookings)
		adminGroup.GET("/stats", bookingController.GetAdminStats)
	}
}
