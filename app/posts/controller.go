package posts

import (
	"errors"
	"net/http"
	"strconv"

	"gatherly/app/models"
	"gatherly/core/router"
	"gatherly/core/types"

	"gorm.io/gorm"
)

type PostController struct {
	Service *PostService
}

func NewPostController(service *PostService) *PostController {
	return &PostController{Service: service}
}

func (c *PostController) Routes(router *router.RouterGroup) {
	router.GET("/posts", c.List)
	router.POST("/posts", c.Create)
	router.GET("/posts/:id", c.Get)
	router.PUT("/posts/:id", c.Update)
	router.DELETE("/posts/:id", c.Delete)
	router.POST("/posts/:id/like", c.Like)
}

// Create godoc
// @Summary Create a new Post
// @Description Create a new Post with the input payload
// @Tags App/Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param posts body models.CreatePostRequest true "Create Post request"
// @Success 201 {object} models.PostResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /posts [post]
func (c *PostController) Create(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	var req models.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	item, err := c.Service.Create(userId, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Meeting not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to create post: " + err.Error()})
	}

	return ctx.JSON(http.StatusCreated, item.ToResponse())
}

// Get godoc
// @Summary Get a Post
// @Description Get a Post by its id
// @Tags App/Posts
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} models.PostResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /posts/{id} [get]
func (c *PostController) Get(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	item, err := c.Service.GetById(uint(id))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Post not found"})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// List godoc
// @Summary List posts
// @Description Get a paginated list of posts, optionally filtered by meeting
// @Tags App/Posts
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Number of items per page"
// @Param meeting_id query int false "Filter by meeting id"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /posts [get]
func (c *PostController) List(ctx *router.Context) error {
	var page, limit *int
	var sortBy, sortOrder *string
	var meetingId *uint

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

	if meetingStr := ctx.Query("meeting_id"); meetingStr != "" {
		meetingNum, err := strconv.ParseUint(meetingStr, 10, 32)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid meeting_id"})
		}
		id := uint(meetingNum)
		meetingId = &id
	}

	paginatedResponse, err := c.Service.GetAll(page, limit, sortBy, sortOrder, meetingId)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch posts: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, paginatedResponse)
}

// Update godoc
// @Summary Update a Post
// @Description Update a Post by its id (author only)
// @Tags App/Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param posts body models.UpdatePostRequest true "Update Post request"
// @Success 200 {object} models.PostResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /posts/{id} [put]
func (c *PostController) Update(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	var req models.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	item, err := c.Service.Update(uint(id), ctx.GetUint("user_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Post not found"})
		case errors.Is(err, ErrNotAuthor):
			return ctx.JSON(http.StatusForbidden, types.ErrorResponse{Error: err.Error()})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to update post: " + err.Error()})
		}
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// Delete godoc
// @Summary Delete a Post
// @Description Delete a Post by its id (author only)
// @Tags App/Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Success 204 {object} nil
// @Failure 403 {object} types.ErrorResponse
// @Router /posts/{id} [delete]
func (c *PostController) Delete(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	if err := c.Service.Delete(uint(id), ctx.GetUint("user_id")); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Post not found"})
		case errors.Is(err, ErrNotAuthor):
			return ctx.JSON(http.StatusForbidden, types.ErrorResponse{Error: err.Error()})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to delete post: " + err.Error()})
		}
	}

	ctx.Status(http.StatusNoContent)
	return nil
}

// Like godoc
// @Summary Like a Post
// @Description Increment the like counter of a post
// @Tags App/Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} models.PostResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /posts/{id}/like [post]
func (c *PostController) Like(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	item, err := c.Service.Like(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Post not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to like post: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}
