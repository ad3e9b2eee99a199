package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"fitboks/internal/api"
	"fitboks/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CreateIntentRequest struct {
	Amount      int64  `json:"amount" binding:"required,min=1"`
	Description string `json:"description"`
}

// CreateIntent godoc
// @Summary      Create a payment intent
// @Description  Creates a Stripe payment intent in DKK and returns the client secret.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  CreateIntentRequest  true  "Amount in øre"
// @Success      201  {object}  Intent
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /payments/intent [post]
func (h *Handler) CreateIntent(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingError(err)})
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), userID, req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: stripeErr.Msg})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusCreated, intent)
}
