package meetings

import (
	"errors"
	"net/http"
	"strconv"

	"gatherly/app/models"
	"gatherly/core/router"
	"gatherly/core/types"

	"gorm.io/gorm"
)

type MeetingController struct {
	Service *MeetingService
}

func NewMeetingController(service *MeetingService) *MeetingController {
	return &MeetingController{Service: service}
}

func (c *MeetingController) Routes(router *router.RouterGroup) {
	router.GET("/meetings", c.List)
	router.POST("/meetings", c.Create)
	router.GET("/meetings/:id", c.Get)
	router.PUT("/meetings/:id", c.Update)
	router.DELETE("/meetings/:id", c.Delete)
	router.POST("/meetings/:id/join", c.Join)
	router.DELETE("/meetings/:id/leave", c.Leave)
	router.GET("/meetings/:id/attendees", c.Attendees)
}

// Create godoc
// @Summary Create a new Meeting
// @Description Create a new Meeting with the input payload
// @Tags App/Meetings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param meetings body models.CreateMeetingRequest true "Create Meeting request"
// @Success 201 {object} models.MeetingResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /meetings [post]
func (c *MeetingController) Create(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	var req models.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	item, err := c.Service.Create(userId, &req)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to create meeting: " + err.Error()})
	}

	return ctx.JSON(http.StatusCreated, item.ToResponse())
}

// Get godoc
// @Summary Get a Meeting
// @Description Get a Meeting by its id
// @Tags App/Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting id"
// @Success 200 {object} models.MeetingResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /meetings/{id} [get]
func (c *MeetingController) Get(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	item, err := c.Service.GetById(uint(id))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Meeting not found"})
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// List godoc
// @Summary List meetings
// @Description Get a paginated list of meetings
// @Tags App/Meetings
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Number of items per page"
// @Param sort query string false "Sort field (id, created_at, title, location, start_time)"
// @Param order query string false "Sort order (asc, desc)"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /meetings [get]
func (c *MeetingController) List(ctx *router.Context) error {
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

	paginatedResponse, err := c.Service.GetAll(page, limit, sortBy, sortOrder)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch meetings: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, paginatedResponse)
}

// Update godoc
// @Summary Update a Meeting
// @Description Update a Meeting by its id (organizer only)
// @Tags App/Meetings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Meeting id"
// @Param meetings body models.UpdateMeetingRequest true "Update Meeting request"
// @Success 200 {object} models.MeetingResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /meetings/{id} [put]
func (c *MeetingController) Update(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	var req models.UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	item, err := c.Service.Update(uint(id), ctx.GetUint("user_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Meeting not found"})
		case errors.Is(err, ErrNotOrganizer):
			return ctx.JSON(http.StatusForbidden, types.ErrorResponse{Error: err.Error()})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to update meeting: " + err.Error()})
		}
	}

	return ctx.JSON(http.StatusOK, item.ToResponse())
}

// Delete godoc
// @Summary Delete a Meeting
// @Description Delete a Meeting by its id (organizer only)
// @Tags App/Meetings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Meeting id"
// @Success 204 {object} nil
// @Failure 403 {object} types.ErrorResponse
// @Router /meetings/{id} [delete]
func (c *MeetingController) Delete(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	if err := c.Service.Delete(uint(id), ctx.GetUint("user_id")); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Meeting not found"})
		case errors.Is(err, ErrNotOrganizer):
			return ctx.JSON(http.StatusForbidden, types.ErrorResponse{Error: err.Error()})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to delete meeting: " + err.Error()})
		}
	}

	ctx.Status(http.StatusNoContent)
	return nil
}

// Join godoc
// @Summary Join a Meeting
// @Description Join a Meeting as the authenticated user
// @Tags App/Meetings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Meeting id"
// @Param input body models.JoinMeetingRequest false "Join request"
// @Success 201 {object} models.AttendanceResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /meetings/{id}/join [post]
func (c *MeetingController) Join(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	var req models.JoinMeetingRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		}
	}

	attendance, err := c.Service.Join(uint(id), userId, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Meeting not found"})
		case errors.Is(err, ErrAlreadyJoined):
			return ctx.JSON(http.StatusConflict, types.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrMeetingFull):
			return ctx.JSON(http.StatusConflict, types.ErrorResponse{Error: err.Error()})
		default:
			return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to join meeting: " + err.Error()})
		}
	}

	return ctx.JSON(http.StatusCreated, attendance.ToResponse())
}

// Leave godoc
// @Summary Leave a Meeting
// @Description Remove the authenticated user's attendance
// @Tags App/Meetings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Meeting id"
// @Success 204 {object} nil
// @Failure 404 {object} types.ErrorResponse
// @Router /meetings/{id}/leave [delete]
func (c *MeetingController) Leave(ctx *router.Context) error {
	userId := ctx.GetUint("user_id")
	if userId == 0 {
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	if err := c.Service.Leave(uint(id), userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Attendance not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to leave meeting: " + err.Error()})
	}

	ctx.Status(http.StatusNoContent)
	return nil
}

// Attendees godoc
// @Summary List meeting attendees
// @Description Get all attendance records for a meeting
// @Tags App/Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting id"
// @Success 200 {array} models.AttendanceResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /meetings/{id}/attendees [get]
func (c *MeetingController) Attendees(ctx *router.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid id format"})
	}

	attendees, err := c.Service.GetAttendees(uint(id))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to fetch attendees: " + err.Error()})
	}

	return ctx.JSON(http.StatusOK, attendees)
}
