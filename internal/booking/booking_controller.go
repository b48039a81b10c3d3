package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/internal/payment"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/responses"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/validator"
)

type BookingController struct {
	service  *Service
	payments payment.PaymentRepository
}

func NewBookingController(service *Service, payments payment.PaymentRepository) *BookingController {
	return &BookingController{service: service, payments: payments}
}

// @Summary      Create a booking
// @Description  Books a turf slot for the authenticated user. The booking
// @Description  starts PENDING; the total is price-per-hour times the
// @Description  duration rounded up to whole hours.
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        booking body CreateBookingRequest true "Booking details"
// @Security     BearerAuth
// @Success      201 {object} Booking
// @Failure      409 {object} responses.ErrorResponse
// @Router       /bookings [post]
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	b, err := bc.service.CreateBooking(userID, req.TurfID, req.BookingDate,
		req.StartTime, req.EndTime, req.FullName, req.PhoneNumber, req.Email, req.PaymentMethod)
	if err != nil {
		bc.sendError(c, err, "Failed to create booking")
		return
	}

	// Payment settles later; record the intent now.
	_ = bc.payments.Create(&payment.Payment{
		BookingID: b.ID,
		Amount:    b.TotalAmount,
		Method:    b.PaymentMethod,
		Status:    payment.StatusPending,
	})

	c.JSON(http.StatusCreated, b)
}

// @Summary      Create multiple one-hour bookings
// @Description  Books several one-hour slots on one date after the payment
// @Description  flow completed. Creation is all-or-nothing.
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        booking body MultiBookingRequest true "Slots to book"
// @Security     BearerAuth
// @Success      201 {array} Booking
// @Failure      409 {object} responses.ErrorResponse
// @Router       /bookings/multiple [post]
func (bc *BookingController) CreateMultipleBookings(c *gin.Context) {
	var req MultiBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	starts := make([]string, 0, len(req.Slots))
	for _, s := range req.Slots {
		starts = append(starts, s.StartTime)
	}

	created, err := bc.service.CreateMultipleBookings(userID, req.TurfID, req.BookingDate,
		starts, req.PaymentMethod, req.FullName, req.PhoneNumber, req.Email)
	if err != nil {
		bc.sendError(c, err, "Failed to create bookings")
		return
	}

	txnID := uuid.NewString()
	for _, b := range created {
		_ = bc.payments.Create(&payment.Payment{
			BookingID:     b.ID,
			Amount:        b.TotalAmount,
			Method:        b.PaymentMethod,
			TransactionID: txnID,
			Status:        payment.StatusSuccess,
		})
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      Record a walk-in booking
// @Description  Turf owners record walk-in reservations that are paid in
// @Description  cash. The slot blocks every other booking on that interval.
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        booking body OfflineBookingRequest true "Offline booking details"
// @Security     BearerAuth
// @Success      201 {object} Booking
// @Failure      403 {object} responses.ErrorResponse
// @Router       /bookings/offline [post]
func (bc *BookingController) CreateOfflineBooking(c *gin.Context) {
	var req OfflineBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	ownerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	b, err := bc.service.CreateOfflineBooking(ownerID, req.TurfID, req.Date,
		req.StartTime, req.EndTime, req.Amount)
	if err != nil {
		bc.sendError(c, err, "Failed to create offline booking")
		return
	}

	_ = bc.payments.Create(&payment.Payment{
		BookingID: b.ID,
		Amount:    b.TotalAmount,
		Method:    offlinePaymentMethod,
		Status:    payment.StatusSuccess,
	})

	c.JSON(http.StatusCreated, b)
}

// @Summary      Delete a walk-in booking
// @Tags         Bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /bookings/offline/{id} [delete]
func (bc *BookingController) DeleteOfflineBooking(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid booking id")
		return
	}
	ownerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	if err := bc.service.DeleteOfflineBooking(id, ownerID); err != nil {
		bc.sendError(c, err, "Failed to delete offline booking")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Offline booking deleted successfully", nil)
}

// @Summary      List walk-in bookings for a turf
// @Tags         Bookings
// @Produce      json
// @Param        turfId path int true "Turf ID"
// @Security     BearerAuth
// @Success      200 {array} Booking
// @Router       /bookings/offline/turf/{turfId} [get]
func (bc *BookingController) GetOfflineBookingsByTurf(c *gin.Context) {
	turfID, err := idParam(c, "turfId")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	ownerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	bookings, err := bc.service.OfflineBookingsByTurf(turfID, ownerID)
	if err != nil {
		bc.sendError(c, err, "Failed to fetch offline bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Check whether a slot is available
// @Tags         Bookings
// @Produce      json
// @Param        turfId query int true "Turf ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Param        startTime query string true "Start time (HH:MM)"
// @Param        endTime query string true "End time (HH:MM)"
// @Success      200 {object} map[string]bool
// @Router       /bookings/availability [get]
func (bc *BookingController) CheckAvailability(c *gin.Context) {
	turfID, err := strconv.ParseUint(c.Query("turfId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	date := c.Query("date")
	start := c.Query("startTime")
	end := c.Query("endTime")
	if date == "" || start == "" || end == "" {
		responses.BadRequest(c, "date, startTime and endTime are required")
		return
	}

	available, err := bc.service.IsTimeSlotAvailable(uint(turfID), date, start, end)
	if err != nil {
		responses.InternalServerError(c, "Failed to check availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// @Summary      List booked start times for a turf and date
// @Tags         Bookings
// @Produce      json
// @Param        turfId query int true "Turf ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {array} string
// @Router       /bookings/booked-slots [get]
func (bc *BookingController) GetBookedSlots(c *gin.Context) {
	turfID, err := strconv.ParseUint(c.Query("turfId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	date := c.Query("date")
	if date == "" {
		responses.BadRequest(c, "date is required")
		return
	}

	slots, err := bc.service.BookedStartTimes(uint(turfID), date)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch booked slots")
		return
	}
	c.JSON(http.StatusOK, slots)
}

// @Summary      List the authenticated user's bookings
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Booking
// @Router       /bookings/my-bookings [get]
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	bookings, err := bc.service.BookingsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Booking totals for the authenticated user
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /bookings/my-bookings/stats [get]
func (bc *BookingController) GetMyBookingStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	count, spent, err := bc.service.BookingTotalsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalBookings": count,
		"totalSpent":    spent,
	})
}

// @Summary      List the authenticated user's bookings in a date range
// @Tags         Bookings
// @Produce      json
// @Param        startDate query string true "Start date (YYYY-MM-DD), inclusive"
// @Param        endDate query string true "End date (YYYY-MM-DD), inclusive"
// @Security     BearerAuth
// @Success      200 {array} Booking
// @Router       /bookings/my-bookings/range [get]
func (bc *BookingController) GetMyBookingsBetweenDates(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		responses.BadRequest(c, "startDate and endDate are required")
		return
	}
	bookings, err := bc.service.UserBookingsBetweenDates(userID, startDate, endDate)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Get a booking by id
// @Description  Users can read their own bookings; owners and admins can
// @Description  read any.
// @Tags         Bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Security     BearerAuth
// @Success      200 {object} Booking
// @Failure      404 {object} responses.ErrorResponse
// @Router       /bookings/{id} [get]
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid booking id")
		return
	}
	b, err := bc.service.FindByID(id)
	if err != nil {
		bc.sendError(c, err, "Failed to fetch booking")
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == user.RoleUser && b.UserID != userID {
		responses.Forbidden(c, "You don't have permission to view this booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      List bookings for a turf with user and turf details
// @Tags         Bookings
// @Produce      json
// @Param        turfId path int true "Turf ID"
// @Security     BearerAuth
// @Success      200 {array} BookingDetails
// @Router       /bookings/turf/{turfId} [get]
func (bc *BookingController) GetBookingsByTurf(c *gin.Context) {
	turfID, err := idParam(c, "turfId")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	details, err := bc.service.BookingDetailsByTurf(turfID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Summary      List bookings for a turf with pagination
// @Tags         Bookings
// @Produce      json
// @Param        turfId path int true "Turf ID"
// @Param        page query int false "Page (zero-based)" default(0)
// @Param        size query int false "Page size" default(10)
// @Security     BearerAuth
// @Success      200 {object} responses.PaginatedResponse
// @Router       /bookings/turf/{turfId}/paginated [get]
func (bc *BookingController) GetBookingsByTurfPaginated(c *gin.Context) {
	turfID, err := idParam(c, "turfId")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	page, size := pageParams(c)
	details, total, err := bc.service.BookingDetailsByTurfPaginated(turfID, page, size)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch bookings")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", details, total, page, size)
}

// @Summary      List bookings across the authenticated owner's turfs
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Booking
// @Router       /bookings/owner [get]
func (bc *BookingController) GetOwnerBookings(c *gin.Context) {
	ownerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	bookings, err := bc.service.BookingsByOwner(ownerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary      Confirm a booking
// @Tags         Bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Security     BearerAuth
// @Success      200 {object} Booking
// @Router       /bookings/{id}/confirm [put]
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid booking id")
		return
	}
	b, err := bc.service.ConfirmBooking(id)
	if err != nil {
		bc.sendError(c, err, "Failed to confirm booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Cancel a booking
// @Description  Completed bookings cannot be cancelled.
// @Tags         Bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Security     BearerAuth
// @Success      200 {object} Booking
// @Failure      400 {object} responses.ErrorResponse
// @Router       /bookings/{id}/cancel [put]
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid booking id")
		return
	}

	b, err := bc.service.FindByID(id)
	if err != nil {
		bc.sendError(c, err, "Failed to fetch booking")
		return
	}
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == user.RoleUser && b.UserID != userID {
		responses.Forbidden(c, "You don't have permission to cancel this booking")
		return
	}

	b, err = bc.service.CancelBooking(id)
	if err != nil {
		bc.sendError(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Update a booking's status
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        id path int true "Booking ID"
// @Param        status body UpdateStatusRequest true "New status"
// @Security     BearerAuth
// @Success      200 {object} Booking
// @Router       /bookings/{id}/status [put]
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid booking id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}
	b, err := bc.service.UpdateBookingStatus(id, req.Status)
	if err != nil {
		bc.sendError(c, err, "Failed to update booking status")
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Delete a booking
// @Tags         Bookings
// @Produce      json
// @Param        id path int true "Booking ID"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /bookings/{id} [delete]
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid booking id")
		return
	}
	if err := bc.service.DeleteBooking(id); err != nil {
		bc.sendError(c, err, "Failed to delete booking")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Booking deleted successfully", nil)
}

// @Summary      List all bookings, optionally filtered by status
// @Tags         Admin
// @Produce      json
// @Param        status query string false "Booking status"
// @Security     BearerAuth
// @Success      200 {array} Booking
// @Router       /admin/bookings [get]
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	if raw := c.Query("status"); raw != "" {
		bookings, err := bc.service.BookingsByStatus(Status(raw))
		if err != nil {
			bc.sendError(c, err, "Failed to fetch bookings")
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	var all []Booking
	for _, status := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		bookings, err := bc.service.BookingsByStatus(status)
		if err != nil {
			responses.InternalServerError(c, "Failed to fetch bookings")
			return
		}
		all = append(all, bookings...)
	}
	c.JSON(http.StatusOK, all)
}

// @Summary      Platform-wide booking statistics
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /admin/bookings/stats [get]
func (bc *BookingController) GetAdminStats(c *gin.Context) {
	totalBookings, err := bc.service.TotalBookings()
	if err != nil {
		responses.InternalServerError(c, "Failed to compute stats")
		return
	}
	totalRevenue, err := bc.service.TotalRevenue()
	if err != nil {
		responses.InternalServerError(c, "Failed to compute stats")
		return
	}
	activeUsers, err := bc.service.ActiveUserCount()
	if err != nil {
		responses.InternalServerError(c, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalBookings": totalBookings,
		"totalRevenue":  totalRevenue,
		"activeUsers":   activeUsers,
	})
}

// sendError maps engine failures onto HTTP statuses.
func (bc *BookingController) sendError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTurfNotFound),
		errors.Is(err, ErrBookingNotFound):
		responses.NotFound(c, "Resource")
	case errors.Is(err, ErrNotOwner):
		responses.Forbidden(c, err.Error())
	case errors.Is(err, ErrSlotTaken):
		responses.SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrTurfInactive),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTime),
		errors.Is(err, ErrPastDate),
		errors.Is(err, ErrPastSlot),
		errors.Is(err, ErrInvalidInterval),
		errors.Is(err, ErrNotOffline),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrCancelCompleted):
		responses.BadRequest(c, err.Error())
	default:
		responses.InternalServerError(c, fallback)
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}
	return page, size
}

func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
