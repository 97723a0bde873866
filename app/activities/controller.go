package activities

import (
	"net/http"
	"strconv"

	"gatherly/core/router"
	"gatherly/core/types"
)

type ActivityController struct {
	Service *ActivityService
}

func NewActivityController(service *ActivityService) *ActivityController {
	return &ActivityController{Service: service}
}

func (c *ActivityController) Routes(router *router.RouterGroup) {
	router.GET("/activities", c.List)
	router.GET("/users/:id/activities", c.ListForUser)
}

// List godoc
// @Summary List recent activity
// @Description Get a paginated feed of recent activity across the site
// @Tags App/Activities
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Number of items per page"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /activities [get]
func (c *ActivityController) List(ctx *router.Context) error {
	page, limit, msg := pagingParams(ctx)
	if msg != "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}

	paginatedResponse, err := c.Service.GetFeed(nil, page, limit)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch activities: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, paginatedResponse)
}

// ListForUser godoc
// @Summary List a user's activity
// @Description Get a paginated feed of one user's activity
// @Tags App/Activities
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param page query int false "Page number"
// @Param limit query int false "Number of items per page"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /users/{id}/activities [get]
func (c *ActivityController) ListForUser(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	page, limit, msg := pagingParams(ctx)
	if msg != "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}

	userId := uint(id)
	paginatedResponse, err := c.Service.GetFeed(&userId, page, limit)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch activities: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, paginatedResponse)
}

func pagingParams(ctx *router.Context) (*int, *int, string) {
	var page, limit *int

	if pageStr := ctx.Query("page"); pageStr != "" {
		pageNum, err := strconv.Atoi(pageStr)
		if err != nil || pageNum < 1 {
			return nil, nil, "Invalid page number"
		}
		page = &pageNum
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		limitNum, err := strconv.Atoi(limitStr)
		if err != nil || limitNum < 1 {
			return nil, nil, "Invalid limit number"
		}
		limit = &limitNum
	}

	return page, limit, ""
}
