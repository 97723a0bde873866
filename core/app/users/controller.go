package users

import (
	"errors"
	"net/http"
	"strconv"

	"gatherly/core/logger"
	"gatherly/core/router"
	"gatherly/core/storage"
	"gatherly/core/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	service *UserService
	storage *storage.ActiveStorage
	logger  logger.Logger
}

func NewUserController(service *UserService, storage *storage.ActiveStorage, logger logger.Logger) *UserController {
	return &UserController{
		service: service,
		storage: storage,
		logger:  logger,
	}
}

func (c *UserController) Routes(router *router.RouterGroup) {
	// Profile endpoints for the authenticated user
	router.GET("/profile", c.GetProfile)
	router.PUT("/profile", c.UpdateProfile)
	router.PUT("/profile/avatar", c.UpdateAvatar)
	router.PUT("/profile/password", c.UpdatePassword)

	// User listing and lookup
	router.GET("/users", c.List)
	router.GET("/users/all", c.ListAll)
	router.GET("/users/:id", c.Get)
	router.DELETE("/users/:id", c.Delete)
}

// GetProfile godoc
// @Summary Get profile from Authenticated User Token
// @Description Get profile by Bearer Token
// @Security BearerAuth
// @Tags Core/Profile
// @Accept json
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *router.Context) error {
	id := ctx.GetUint("user_id")
	if id == 0 {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid user Id"})
	}

	item, err := c.service.GetById(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "User not found"})
		}
		c.logger.Error("Failed to get user", logger.Uint("user_id", id))
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch user"})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// UpdateProfile godoc
// @Summary Update profile from Authenticated User Token
// @Description Update profile by Bearer Token
// @Security BearerAuth
// @Tags Core/Profile
// @Accept json
// @Produce json
// @Param input body UpdateUserRequest true "Update Request"
// @Success 200 {object} UserResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /profile [put]
func (c *UserController) UpdateProfile(ctx *router.Context) error {
	id := ctx.GetUint("user_id")
	if id == 0 {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid user Id"})
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid input: " + err.Error()})
	}

	item, err := c.service.Update(id, &req)
	if err != nil {
		c.logger.Error("Failed to update user", logger.Uint("user_id", id))
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to update user: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// UpdateAvatar godoc
// @Summary Update profile avatar from Authenticated User Token
// @Description Update profile avatar by Bearer Token
// @Security BearerAuth
// @Tags Core/Profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar file"
// @Success 200 {object} UserResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /profile/avatar [put]
func (c *UserController) UpdateAvatar(ctx *router.Context) error {
	id := ctx.GetUint("user_id")
	if id == 0 {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid user Id"})
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Failed to get avatar file: " + err.Error()})
	}

	updatedUser, err := c.service.UpdateAvatar(id, file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "User not found"})
		}
		c.logger.Error("Failed to update avatar", logger.Uint("user_id", id))
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to update avatar: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, updatedUser.ToResponse())
}

// UpdatePassword godoc
// @Summary Update profile password from Authenticated User Token
// @Description Update profile password by Bearer Token
// @Security BearerAuth
// @Tags Core/Profile
// @Accept json
// @Produce json
// @Param input body UpdatePasswordRequest true "Update Password Request"
// @Success 200 {object} types.SuccessResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /profile/password [put]
func (c *UserController) UpdatePassword(ctx *router.Context) error {
	id := ctx.GetUint("user_id")
	if id == 0 {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid user Id"})
	}

	var req UpdatePasswordRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid input: " + err.Error()})
	}

	err := c.service.UpdatePassword(id, &req)
	if err != nil {
		c.logger.Error("Failed to update password", logger.Uint("user_id", id))
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "User not found"})
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Current password is incorrect"})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to update password"})
		}
	}

	return ctx.JSON(http.StatusOK, types.SuccessResponse{Success: true, Message: "Password updated successfully"})
}

// Get godoc
// @Summary Get a User
// @Description Get a User by its id
// @Tags Core/Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} UserResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) Get(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	item, err := c.service.GetById(uint(id))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "User not found"})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// List godoc
// @Summary List users
// @Description Get a paginated list of users
// @Tags Core/Users
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Number of items per page"
// @Param sort query string false "Sort field"
// @Param order query string false "Sort order (asc, desc)"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /users [get]
func (c *UserController) List(ctx *router.Context) error {
	var page, limit *int
	var sortBy, sortOrder *string

	if pageStr := ctx.Query("page"); pageStr != "" {
		if pageNum, err := strconv.Atoi(pageStr); err == nil && pageNum > 0 {
			page = &pageNum
		} else {
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid page number"})
		}
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limitNum, err := strconv.Atoi(limitStr); err == nil && limitNum > 0 {
			limit = &limitNum
		} else {
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid limit number"})
		}
	}

	if sortStr := ctx.Query("sort"); sortStr != "" {
		sortBy = &sortStr
	}

	if orderStr := ctx.Query("order"); orderStr != "" {
		if orderStr == "asc" || orderStr == "desc" {
			sortOrder = &orderStr
		} else {
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid sort order. Use 'asc' or 'desc'"})
		}
	}

	paginatedResponse, err := c.service.GetAll(page, limit, sortBy, sortOrder)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch users: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, paginatedResponse)
}

// ListAll godoc
// @Summary List all users for select options
// @Description Get a simplified list of all active users with id and name only
// @Tags Core/Users
// @Accept json
// @Produce json
// @Success 200 {array} UserSelectOption
// @Failure 500 {object} types.ErrorResponse
// @Router /users/all [get]
func (c *UserController) ListAll(ctx *router.Context) error {
	items, err := c.service.GetAllForSelect()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch select options: " + err.Error()})
	}

	var selectOptions []*UserSelectOption
	for _, item := range items {
		selectOptions = append(selectOptions, item.ToSelectOption())
	}

	return ctx.JSON(http.StatusOK, selectOptions)
}

// Delete godoc
// @Summary Delete a User
// @Description Delete a User by its id
// @Tags Core/Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 204 {object} nil
// @Failure 400 {object} types.ErrorResponse
// @Router /users/{id} [delete]
func (c *UserController) Delete(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	if err := c.service.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "User not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to delete user: " + err.Error()})
	}

	ctx.Status(http.StatusNoContent)
	return nil
}
