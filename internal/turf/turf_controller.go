package turf

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	"github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/responses"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/validator"
)

// OwnerStatsProvider reports booking totals for the turfs an owner manages.
// Implemented by the booking service.
type OwnerStatsProvider interface {
	BookingTotalsByOwner(ownerID uint) (int64, float64, error)
}

var errTurfNotFound = errors.New("turf not found")

type TurfController struct {
	repo   TurfRepository
	stats  OwnerStatsProvider
	config *config.Config
}

func NewTurfController(repo TurfRepository, stats OwnerStatsProvider, cfg *config.Config) *TurfController {
	return &TurfController{repo: repo, stats: stats, config: cfg}
}

// @Summary      List active turfs
// @Tags         Turfs
// @Produce      json
// @Success      200 {array} Turf
// @Router       /turfs/public [get]
func (tc *TurfController) GetAllActiveTurfs(c *gin.Context) {
	turfs, err := tc.repo.FindByActive(true)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch turfs")
		return
	}
	c.JSON(http.StatusOK, turfs)
}

// @Summary      List active turfs with pagination
// @Tags         Turfs
// @Produce      json
// @Param        page query int false "Page (zero-based)" default(0)
// @Param        size query int false "Page size" default(10)
// @Success      200 {object} responses.PaginatedResponse
// @Router       /turfs/public/paginated [get]
func (tc *TurfController) GetAllActiveTurfsPaginated(c *gin.Context) {
	page, size := pageParams(c)
	turfs, total, err := tc.repo.FindActivePaginated(page, size)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch turfs")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", turfs, total, page, size)
}

// @Summary      Get a turf by id
// @Tags         Turfs
// @Produce      json
// @Param        id path int true "Turf ID"
// @Success      200 {object} Turf
// @Failure      404 {object} responses.ErrorResponse
// @Router       /turfs/public/{id} [get]
func (tc *TurfController) GetTurfByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	t, err := tc.repo.FindByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch turf")
		return
	}
	if t == nil {
		responses.NotFound(c, "Turf")
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Search active turfs by location
// @Tags         Turfs
// @Produce      json
// @Param        location query string true "Location substring"
// @Success      200 {array} Turf
// @Router       /turfs/public/search [get]
func (tc *TurfController) SearchTurfsByLocation(c *gin.Context) {
	location := c.Query("location")
	turfs, err := tc.repo.FindByLocation(location)
	if err != nil {
		responses.InternalServerError(c, "Failed to search turfs")
		return
	}
	c.JSON(http.StatusOK, turfs)
}

// @Summary      Filter active turfs by location and price range
// @Tags         Turfs
// @Produce      json
// @Param        location query string false "Location substring"
// @Param        minPrice query number false "Minimum price per hour"
// @Param        maxPrice query number false "Maximum price per hour"
// @Success      200 {object} responses.PaginatedResponse
// @Router       /turfs/public/filter [get]
func (tc *TurfController) FilterTurfs(c *gin.Context) {
	page, size := pageParams(c)
	location := c.Query("location")
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("minPrice", "0"), 64)
	maxPrice, err := strconv.ParseFloat(c.DefaultQuery("maxPrice", "10000"), 64)
	if err != nil {
		maxPrice = 10000
	}

	turfs, total, err := tc.repo.FilterByLocationAndPrice(location, minPrice, maxPrice, page, size)
	if err != nil {
		responses.InternalServerError(c, "Failed to filter turfs")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", turfs, total, page, size)
}

// @Summary      Create a turf
// @Description  Owner submissions stay pending (inactive) until an admin approves them.
// @Tags         Turfs
// @Accept       json
// @Produce      json
// @Param        turf body CreateTurfRequest true "Turf details"
// @Security     BearerAuth
// @Success      201 {object} Turf
// @Router       /turfs [post]
func (tc *TurfController) CreateTurf(c *gin.Context) {
	var req CreateTurfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	t := &Turf{
		Name:         req.Name,
		Description:  req.Description,
		Location:     req.Location,
		PricePerHour: req.PricePerHour,
		Amenities:    req.Amenities,
		OwnerID:      userID,
		// Admin-created turfs go live immediately; owner submissions wait
		// for moderation.
		IsActive: role == user.RoleAdmin,
	}
	if len(req.ImageArray) > 0 {
		t.Images = JoinImages(req.ImageArray)
	} else {
		t.Images = req.Images
	}

	if err := tc.repo.Create(t); err != nil {
		responses.InternalServerError(c, "Failed to create turf")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary      List the authenticated owner's turfs
// @Tags         Turfs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Turf
// @Router       /turfs/my-turfs [get]
func (tc *TurfController) GetMyTurfs(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	turfs, err := tc.repo.FindByOwnerID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch turfs")
		return
	}
	c.JSON(http.StatusOK, turfs)
}

// @Summary      Booking totals across the authenticated owner's turfs
// @Tags         Turfs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /turfs/my-turfs/stats [get]
func (tc *TurfController) GetMyTurfsStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	count, revenue, err := tc.stats.BookingTotalsByOwner(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalBookings": count,
		"totalRevenue":  revenue,
	})
}

// @Summary      Update a turf
// @Tags         Turfs
// @Accept       json
// @Produce      json
// @Param        id path int true "Turf ID"
// @Param        turf body CreateTurfRequest true "Turf details"
// @Security     BearerAuth
// @Success      200 {object} Turf
// @Router       /turfs/{id} [put]
func (tc *TurfController) UpdateTurf(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	var req CreateTurfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	t, forbidden, err := tc.loadOwnedTurf(c, id)
	if err != nil {
		return
	}
	if forbidden {
		responses.Forbidden(c, "You don't have permission to update this turf")
		return
	}

	t.Name = req.Name
	t.Description = req.Description
	t.Location = req.Location
	t.PricePerHour = req.PricePerHour
	t.Amenities = req.Amenities
	if len(req.ImageArray) > 0 {
		t.Images = JoinImages(req.ImageArray)
	} else {
		t.Images = req.Images
	}

	if err := tc.repo.Update(t); err != nil {
		responses.InternalServerError(c, "Failed to update turf")
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Delete a turf
// @Tags         Turfs
// @Produce      json
// @Param        id path int true "Turf ID"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /turfs/{id} [delete]
func (tc *TurfController) DeleteTurf(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}

	_, forbidden, err := tc.loadOwnedTurf(c, id)
	if err != nil {
		return
	}
	if forbidden {
		responses.Forbidden(c, "You don't have permission to delete this turf")
		return
	}

	if err := tc.repo.Delete(id); err != nil {
		responses.InternalServerError(c, "Failed to delete turf")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Turf deleted successfully", nil)
}

// @Summary      List turfs pending approval
// @Tags         Turfs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Turf
// @Router       /turfs/admin/pending [get]
func (tc *TurfController) ListPendingTurfs(c *gin.Context) {
	turfs, err := tc.repo.FindByActive(false)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch pending turfs")
		return
	}
	c.JSON(http.StatusOK, turfs)
}

// @Summary      Approve a pending turf
// @Tags         Turfs
// @Produce      json
// @Param        id path int true "Turf ID"
// @Security     BearerAuth
// @Success      200 {object} Turf
// @Router       /turfs/{id}/approve [put]
func (tc *TurfController) ApproveTurf(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	t, err := tc.repo.FindByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch turf")
		return
	}
	if t == nil {
		responses.NotFound(c, "Turf")
		return
	}
	t.IsActive = true
	if err := tc.repo.Update(t); err != nil {
		responses.InternalServerError(c, "Failed to approve turf")
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Reject (delete) a pending turf
// @Tags         Turfs
// @Produce      json
// @Param        id path int true "Turf ID"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /turfs/{id}/reject [put]
func (tc *TurfController) RejectTurf(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid turf id")
		return
	}
	t, err := tc.repo.FindByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch turf")
		return
	}
	if t == nil {
		responses.NotFound(c, "Turf")
		return
	}
	if err := tc.repo.Delete(id); err != nil {
		responses.InternalServerError(c, "Failed to reject turf")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Turf rejected successfully", nil)
}

// loadOwnedTurf fetches the turf and checks that the caller owns it or is an
// admin. It writes the error response itself when the lookup fails.
func (tc *TurfController) loadOwnedTurf(c *gin.Context, id uint) (*Turf, bool, error) {
	t, err := tc.repo.FindByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch turf")
		return nil, false, err
	}
	if t == nil {
		responses.NotFound(c, "Turf")
		return nil, false, errTurfNotFound
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false, err
	}
	role, _ := middleware.GetUserRoleFromContext(c)
	if role != user.RoleAdmin && t.OwnerID != userID {
		return t, true, nil
	}
	return t, false, nil
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
