package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"gatherly/core/router"
	"gatherly/core/types"

	"gorm.io/gorm"
)

type NotificationController struct {
	Service *NotificationService
}

func NewNotificationController(service *NotificationService) *NotificationController {
	return &NotificationController{Service: service}
}

func (c *NotificationController) Routes(router *router.RouterGroup) {
	router.GET("/notifications", c.List)
	router.GET("/notifications/unread-count", c.UnreadCount)
	router.PUT("/notifications/:id/read", c.MarkRead)
	router.PUT("/notifications/read-all", c.MarkAllRead)
}

// List godoc
// @Summary List notifications
// @Description Get a paginated list of the authenticated user's notifications
// @Tags App/Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Number of items per page"
// @Success 200 {object} types.PaginatedResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /notifications [get]
func (c *NotificationController) List(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	var page, limit *int

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

	paginatedResponse, err := c.Service.GetForUser(userId, page, limit)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch notifications: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, paginatedResponse)
}

// UnreadCount godoc
// @Summary Count unread notifications
// @Description Get the authenticated user's unread notification count
// @Tags App/Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} types.ErrorResponse
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	count, err := c.Service.UnreadCount(userId)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to count notifications: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"count": count})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Description Mark one of the authenticated user's notifications as read
// @Tags App/Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Notification id"
// @Success 200 {object} models.NotificationResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	item, err := c.Service.MarkRead(uint(id), userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Notification not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to mark notification read: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// MarkAllRead godoc
// @Summary Mark all notifications as read
// @Description Mark every unread notification of the authenticated user as read
// @Tags App/Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} types.SuccessResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	if err := c.Service.MarkAllRead(userId); err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to mark notifications read: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, types.SuccessResponse{Success: true, Message: "All notifications marked as read"})
}
