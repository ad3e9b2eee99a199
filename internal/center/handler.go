package center

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitboks/internal/api"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
// @Summary      List fitness centers
// @Tags         centers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Center
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /centers [get]
func (h *Handler) List(c *gin.Context) {
	centers, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch fitness centers"})
		return
	}

	if centers == nil {
		centers = []Center{}
	}

	c.JSON(http.StatusOK, centers)
}

// Get godoc
// @Summary      Get a fitness center
// @Tags         centers
// @Security     BearerAuth
// @Produce      json
// @Param        centerID  path  int  true  "Fitness center ID"
// @Success      200  {object}  Center
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /centers/{centerID} [get]
func (h *Handler) Get(c *gin.Context) {
	centerID, err := strconv.Atoi(c.Param("centerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid fitness center ID"})
		return
	}

	center, err := h.repo.GetByID(c.Request.Context(), centerID)
	if err != nil {
		if errors.Is(err, ErrCenterNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Fitness center not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch fitness center"})
		return
	}

	c.JSON(http.StatusOK, center)
}

// Create godoc
// @Summary      Create a fitness center
// @Tags         admin,centers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateCenterRequest  true  "Center payload"
// @Success      201  {object}  Center
// @Failure      400  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/centers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingError(err)})
		return
	}

	center, err := h.repo.Create(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create fitness center"})
		return
	}

	c.JSON(http.StatusCreated, center)
}
