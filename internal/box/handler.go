package box

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fitboks/internal/api"
	"fitboks/internal/auth"
	"fitboks/internal/availability"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Availability godoc
// @Summary      Box availability for a date
// @Description  Returns, per box, every start hour after the given clock at which a booking of the requested duration fits without overlapping an existing one.
// @Tags         boxes
// @Security     BearerAuth
// @Produce      json
// @Param        centerID  path   int     true  "Fitness center ID"
// @Param        date      query  string  true  "Date (YYYY-MM-DD)"
// @Param        clock     query  string  true  "Current time (HH:MM or HHMM)"
// @Param        duration  query  int     true  "Duration in hours (1-4)"
// @Success      200  {object}  AvailabilityResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /centers/{centerID}/availability [get]
func (h *Handler) Availability(c *gin.Context) {
	centerID, err := strconv.Atoi(c.Param("centerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid fitness center ID"})
		return
	}

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid duration"})
		return
	}

	result, err := h.service.Availability(
		c.Request.Context(), centerID, c.Query("date"), c.Query("clock"), duration)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check availability"})
		return
	}

	if result.NoSlotsToday {
		c.JSON(http.StatusOK, NoSlotsResponse{Message: "No more bookings available today"})
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		NextAvailableHour: result.EarliestStart,
		DurationHours:     result.Duration,
		BoxAvailability:   result.ByBox,
	})
}

// List godoc
// @Summary      List boxes with upcoming-hour occupancy
// @Tags         boxes
// @Security     BearerAuth
// @Produce      json
// @Param        centerID  path  int  true  "Fitness center ID"
// @Success      200  {array}   BoxWithOccupancy
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /centers/{centerID}/boxes [get]
func (h *Handler) List(c *gin.Context) {
	centerID, err := strconv.Atoi(c.Param("centerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid fitness center ID"})
		return
	}

	boxes, err := h.service.ListWithOccupancy(c.Request.Context(), centerID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch boxes"})
		return
	}

	if boxes == nil {
		boxes = []BoxWithOccupancy{}
	}

	c.JSON(http.StatusOK, boxes)
}

// Week godoc
// @Summary      Seven-day availability grid for one box
// @Tags         admin,boxes
// @Security     BearerAuth
// @Produce      json
// @Param        centerID  path  int  true  "Fitness center ID"
// @Param        boxID     path  int  true  "Box ID"
// @Success      200  {object}  WeekView
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/centers/{centerID}/boxes/{boxID}/week [get]
func (h *Handler) Week(c *gin.Context) {
	centerID, err := strconv.Atoi(c.Param("centerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid fitness center ID"})
		return
	}

	boxID, err := strconv.Atoi(c.Param("boxID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid box ID"})
		return
	}

	view, err := h.service.WeekAvailability(c.Request.Context(), centerID, boxID, time.Now())
	if err != nil {
		if errors.Is(err, ErrBoxNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Box not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch availability"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateStatus godoc
// @Summary      Close or free a box right now
// @Description  Admin-only: clears the booking covering the current hour, then either frees the box or blocks it for the given number of hours.
// @Tags         admin,boxes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  UpdateStatusRequest  true  "Status update"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/boxes/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingError(err)})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), userID, req, time.Now()); err != nil {
		switch {
		case errors.Is(err, ErrBoxNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Box not found"})
		case errors.Is(err, availability.ErrInvalidArgument), errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update box status"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Box status updated successfully"})
}

// Create godoc
// @Summary      Create a box
// @Tags         admin,boxes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateBoxRequest  true  "Box payload"
// @Success      201  {object}  Box
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /admin/boxes [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingError(err)})
		return
	}

	box, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create box"})
		return
	}

	c.JSON(http.StatusCreated, box)
}
