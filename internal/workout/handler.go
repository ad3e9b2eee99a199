package workout

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"fitboks/internal/api"
	"fitboks/internal/logger"
)

type Handler struct {
	repo     *Repository
	seedFile string
}

func NewHandler(repo *Repository, seedFile string) *Handler {
	return &Handler{repo: repo, seedFile: seedFile}
}

// Load godoc
// @Summary      Load the workout catalog (admin)
// @Description  Reads the workout seed file from disk and inserts its workouts, weeks and exercises.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.MessageResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/workouts/load [post]
func (h *Handler) Load(c *gin.Context) {
	data, err := os.ReadFile(h.seedFile)
	if err != nil {
		logger.Error("failed to read workout seed file", "path", h.seedFile, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load workouts"})
		return
	}

	var workouts []Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		logger.Error("failed to parse workout seed file", "path", h.seedFile, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load workouts"})
		return
	}

	if err := h.repo.Load(c.Request.Context(), workouts); err != nil {
		logger.Error("failed to insert workout catalog", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load workouts"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Workouts loaded successfully"})
}

// List godoc
// @Summary      List the workout catalog
// @Tags         workouts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  CatalogResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /workouts [get]
func (h *Handler) List(c *gin.Context) {
	workouts, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch workouts"})
		return
	}

	c.JSON(http.StatusOK, CatalogResponse{Workouts: workouts})
}
