package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yagnamodi22/book-by-truf-backend/pkg/responses"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/validator"
)

type UserController struct {
	repo UserRepository
}

func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

// BulkDeleteRequest removes several accounts in one call.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// @Summary      List all users
// @Tags         Admin
// @Produce      json
// @Param        page query int false "Page (zero-based)"
// @Param        size query int false "Page size"
// @Security     BearerAuth
// @Success      200 {object} responses.PaginatedResponse
// @Router       /admin/users [get]
func (uc *UserController) GetAllUsers(c *gin.Context) {
	if c.Query("page") == "" && c.Query("size") == "" {
		users, err := uc.repo.FindAll()
		if err != nil {
			responses.InternalServerError(c, "Failed to fetch users")
			return
		}
		c.JSON(http.StatusOK, users)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}

	users, total, err := uc.repo.FindAllPaginated(page, size)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch users")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", users, total, page, size)
}

// @Summary      Get a user by id
// @Tags         Admin
// @Produce      json
// @Param        id path int true "User ID"
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      404 {object} responses.ErrorResponse
// @Router       /admin/users/{id} [get]
func (uc *UserController) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}
	u, err := uc.repo.FindByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Delete a user
// @Tags         Admin
// @Produce      json
// @Param        id path int true "User ID"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}
	u, err := uc.repo.FindByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	if err := uc.repo.Delete(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete user")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

// @Summary      Delete several users
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        ids body BulkDeleteRequest true "User ids to delete"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/users [delete]
func (uc *UserController) DeleteUsers(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}
	if err := uc.repo.DeleteMany(req.IDs); err != nil {
		responses.InternalServerError(c, "Failed to delete users")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Users deleted successfully", nil)
}
