package transaction

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/raihansarker4343/exchange/internal/api"
	"github.com/raihansarker4343/exchange/internal/auth"
	"github.com/raihansarker4343/exchange/internal/metrics"
	"github.com/raihansarker4343/exchange/internal/registry"
	"github.com/raihansarker4343/exchange/internal/user"
)

type Handler struct {
	svc Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		svc: NewService(
			NewRepository(db),
			registry.NewRepository(db),
			user.NewRepository(db),
		),
	}
}

// Submit godoc
// @Summary      Submit a gift card for exchange
// @Description  Validates the card type, payout method and per-transaction limit, then records a PENDING transaction with the rate frozen in.
// @Tags         transactions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitRequest  true  "Submission data"
// @Success      200      {object}  Transaction
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/transactions/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	trx, err := h.svc.Submit(c.Request.Context(), userID, req)
	if err != nil {
		var limitErr *LimitExceededError
		switch {
		case errors.Is(err, ErrUnknownCardType):
			metrics.RecordSubmission(req.CardType, "unknown_card_type")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or disabled card type"})
		case errors.Is(err, ErrUnknownPaymentMethod):
			metrics.RecordSubmission(req.CardType, "unknown_method")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or disabled payment method"})
		case errors.Is(err, ErrInvalidAmount):
			metrics.RecordSubmission(req.CardType, "invalid_amount")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card amount must be positive"})
		case errors.As(err, &limitErr):
			metrics.RecordSubmission(req.CardType, "limit_exceeded")
			c.JSON(http.StatusBadRequest, gin.H{"error": limitErr.Error()})
		default:
			metrics.RecordSubmission(req.CardType, "error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission failed"})
		}
		return
	}

	metrics.RecordSubmission(trx.CardType, "accepted")
	c.JSON(http.StatusOK, trx)
}

// ListMine godoc
// @Summary      List own transactions
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Transaction
// @Failure      401  {object}  api.ErrorResponse
// @Router       /api/transactions/my [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	txs, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

// ListAll godoc
// @Summary      List all transactions
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Transaction
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/admin/transactions [get]
func (h *Handler) ListAll(c *gin.Context) {
	txs, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

// UpdateStatus godoc
// @Summary      Approve or reject a pending transaction
// @Description  PENDING transactions move to APPROVED or REJECTED exactly once; a second review attempt returns 409.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Transaction ID"
// @Param        request  body      ReviewRequest  true  "New status and optional note"
// @Success      200      {object}  Transaction
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/admin/transactions/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trx, err := h.svc.SetStatus(c.Request.Context(), id, req.Status, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be APPROVED or REJECTED"})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction already reviewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		}
		return
	}

	metrics.RecordReview(trx.Status)
	c.JSON(http.StatusOK, trx)
}

// GetStats godoc
// @Summary      Admin dashboard statistics
// @Description  Aggregates are computed from the current ledger on every call.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Stats
// @Failure      401  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
