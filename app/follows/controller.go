package follows

import (
	"errors"
	"net/http"
	"strconv"

	"gatherly/core/router"
	"gatherly/core/types"

	"gorm.io/gorm"
)

type FollowController struct {
	Service *FollowService
}

func NewFollowController(service *FollowService) *FollowController {
	return &FollowController{Service: service}
}

func (c *FollowController) Routes(router *router.RouterGroup) {
	router.POST("/users/:id/follow", c.Follow)
	router.DELETE("/users/:id/follow", c.Unfollow)
	router.GET("/users/:id/followers", c.Followers)
	router.GET("/users/:id/following", c.Following)
}

// Follow godoc
// @Summary Follow a user
// @Description Follow the user with the given id
// @Tags App/Follows
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 201 {object} models.FollowResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /users/{id}/follow [post]
func (c *FollowController) Follow(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	item, err := c.Service.Follow(userId, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFollow):
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyFollowing):
			return ctx.JSON(http.StatusConflict, types.ErrorResponse{Error: err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "User not found"})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to follow user: " + err.Error()})
		}
	}

	return ctx.JSON(http.StatusCreated, item.ToResponse())
}

// Unfollow godoc
// @Summary Unfollow a user
// @Description Remove the authenticated user's follow of the given user
// @Tags App/Follows
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 204 {object} nil
// @Failure 404 {object} types.ErrorResponse
// @Router /users/{id}/follow [delete]
func (c *FollowController) Unfollow(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	if err := c.Service.Unfollow(userId, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Follow not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to unfollow user: " + err.Error()})
	}

	ctx.Status(http.StatusNoContent)
	return nil
}

// Followers godoc
// @Summary List a user's followers
// @Description Get the users following the given user
// @Tags App/Follows
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 200 {array} models.FollowResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /users/{id}/followers [get]
func (c *FollowController) Followers(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	items, err := c.Service.GetFollowers(uint(id))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch followers: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, items)
}

// Following godoc
// @Summary List who a user follows
// @Description Get the users the given user follows
// @Tags App/Follows
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Success 200 {array} models.FollowResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /users/{id}/following [get]
func (c *FollowController) Following(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	items, err := c.Service.GetFollowing(uint(id))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch following: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, items)
}
