package report

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitboks/internal/api"
	"fitboks/internal/auth"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Stats godoc
// @Summary      Admin dashboard statistics
// @Description  Member counts, box counts and a 30 day booking histogram for the caller's fitness center.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Stats
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	centerID, ok := auth.GetFitnessCenterID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.repo.Stats(c.Request.Context(), centerID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
