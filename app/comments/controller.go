package comments

import (
	"errors"
	"net/http"
	"strconv"

	"gatherly/app/models"
	"gatherly/core/router"
	"gatherly/core/types"

	"gorm.io/gorm"
)

type CommentController struct {
	Service *CommentService
}

func NewCommentController(service *CommentService) *CommentController {
	return &CommentController{Service: service}
}

func (c *CommentController) Routes(router *router.RouterGroup) {
	router.POST("/comments", c.Create)
	router.GET("/comments/:id", c.Get)
	router.PUT("/comments/:id", c.Update)
	router.DELETE("/comments/:id", c.Delete)
	router.GET("/posts/:id/comments", c.ListByPost)
}

// Create godoc
// @Summary Create a new Comment
// @Description Create a new Comment on a post
// @Tags App/Comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param comments body models.CreateCommentRequest true "Create Comment request"
// @Success 201 {object} models.CommentResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /comments [post]
func (c *CommentController) Create(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	var req models.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	item, err := c.Service.Create(userId, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Post not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to create comment: " + err.Error()})
	}

	return ctx.JSON(http.StatusCreated, item.ToResponse())
}

// Get godoc
// @Summary Get a Comment
// @Description Get a Comment by its id
// @Tags App/Comments
// @Accept json
// @Produce json
// @Param id path int true "Comment id"
// @Success 200 {object} models.CommentResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /comments/{id} [get]
func (c *CommentController) Get(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	item, err := c.Service.GetById(uint(id))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Comment not found"})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// Update godoc
// @Summary Update a Comment
// @Description Update a Comment by its id (author only)
// @Tags App/Comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Comment id"
// @Param comments body models.UpdateCommentRequest true "Update Comment request"
// @Success 200 {object} models.CommentResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /comments/{id} [put]
func (c *CommentController) Update(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	var req models.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	item, err := c.Service.Update(uint(id), ctx.GetUint("user_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Comment not found"})
		case errors.Is(err, ErrNotAuthor):
			return ctx.JSON(http.StatusForbidden, types.ErrorResponse{Error: err.Error()})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to update comment: " + err.Error()})
		}
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// Delete godoc
// @Summary Delete a Comment
// @Description Delete a Comment by its id (author only)
// @Tags App/Comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Comment id"
// @Success 204 {object} nil
// @Failure 403 {object} types.ErrorResponse
// @Router /comments/{id} [delete]
func (c *CommentController) Delete(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	if err := c.Service.Delete(uint(id), ctx.GetUint("user_id")); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Comment not found"})
		case errors.Is(err, ErrNotAuthor):
			return ctx.JSON(http.StatusForbidden, types.ErrorResponse{Error: err.Error()})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to delete comment: " + err.Error()})
		}
	}

	ctx.Status(http.StatusNoContent)
	return nil
}

// ListByPost godoc
// @Summary List comments for a post
// @Description Get a paginated list of comments on a post, oldest first
// @Tags App/Comments
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param page query int false "Page number"
// @Param limit query int false "Number of items per page"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /posts/{id}/comments [get]
func (c *CommentController) ListByPost(ctx *router.Context) error {
	postId, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
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

	paginatedResponse, err := c.Service.GetByPost(uint(postId), page, limit)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch comments: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, paginatedResponse)
}
