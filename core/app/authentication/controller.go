package authentication

import (
	"errors"
	"net/http"

	"gatherly/core/router"
	"gatherly/core/types"
)

type AuthController struct {
	service *AuthService
}

func NewAuthController(service *AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Routes(router *router.RouterGroup) {
	router.POST("/auth/register", c.Register)
	router.POST("/auth/login", c.Login)
}

// Register godoc
// @Summary Register a new account
// @Description Create an account and receive an access token
// @Tags Core/Auth
// @Accept json
// @Produce json
// @Param input body RegisterRequest true "Register request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *router.Context) error {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid input: " + err.Error()})
	}

	resp, err := c.service.Register(&req)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Registration failed: " + err.Error()})
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for an access token
// @Tags Core/Auth
// @Accept json
// @Produce json
// @Param input body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *router.Context) error {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid input: " + err.Error()})
	}

	resp, err := c.service.Login(&req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: err.Error()})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Login failed: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, resp)
}
