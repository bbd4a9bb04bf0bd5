package registry

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	svc Service
}

func NewHandler(db *sqlx.DB, cache *Cache) *Handler {
	return &Handler{
		svc: NewService(NewRepository(db), cache),
	}
}

// ListRates godoc
// @Summary      List gift card rates
// @Description  Returns all configured rates ordered by card type.
// @Tags         config
// @Produce      json
// @Success      200  {array}   GiftCardRate
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/config/rates [get]
func (h *Handler) ListRates(c *gin.Context) {
	rates, err := h.svc.ListRates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rates"})
		return
	}

	c.JSON(http.StatusOK, rates)
}

// UpdateRates godoc
// @Summary      Update gift card rates
// @Description  Applies rate edits sequentially; the first failure aborts the batch.
// @Tags         config
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      []RateEdit  true  "Rate edits"
// @Success      200      {object}  api.SuccessResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/config/rates [put]
func (h *Handler) UpdateRates(c *gin.Context) {
	var edits []RateEdit
	if err := c.ShouldBindJSON(&edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateRates(c.Request.Context(), edits); err != nil {
		if errors.Is(err, ErrInvalidRate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateRate godoc
// @Summary      Create a gift card rate
// @Tags         config
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRateRequest  true  "New rate"
// @Success      201      {object}  GiftCardRate
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/config/rates [post]
func (h *Handler) CreateRate(c *gin.Context) {
	var req CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rate, err := h.svc.CreateRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must be positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rate"})
		return
	}

	c.JSON(http.StatusCreated, rate)
}

// ListMethods godoc
// @Summary      List payment methods
// @Description  Returns all payout methods ordered by name.
// @Tags         config
// @Produce      json
// @Success      200  {array}   PaymentMethod
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/config/methods [get]
func (h *Handler) ListMethods(c *gin.Context) {
	methods, err := h.svc.ListMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load methods"})
		return
	}

	c.JSON(http.StatusOK, methods)
}

// UpdateMethods godoc
// @Summary      Update payment methods
// @Tags         config
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      []MethodEdit  true  "Method edits"
// @Success      200      {object}  api.SuccessResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/config/methods [put]
func (h *Handler) UpdateMethods(c *gin.Context) {
	var edits []MethodEdit
	if err := c.ShouldBindJSON(&edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateMethods(c.Request.Context(), edits); err != nil {
		if errors.Is(err, ErrInvalidLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update methods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
