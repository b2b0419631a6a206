package api

import (
	"net/http"

	"github.com/dhawal37/ecorides/internal/service/points"
	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	service points.PointsUseCase
}

type redeemPointsRequest struct {
	Points int64 `json:"points"`
}

type pointsBalanceResponse struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
}

func NewPointsHandler(service points.PointsUseCase) *PointsHandler {
	return &PointsHandler{service: service}
}

func (h *PointsHandler) Register(router *gin.RouterGroup) {
	router.GET("/:user_id", h.balance)
	router.POST("/:user_id/redeem", h.redeem)
}

func (h *PointsHandler) balance(c *gin.Context) {
	userID := c.Param("user_id")
	balance, err := h.service.Balance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pointsBalanceResponse{UserID: userID, Points: balance})
}

func (h *PointsHandler) redeem(c *gin.Context) {
	var req redeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.Param("user_id")
	if err := h.service.Redeem(c.Request.Context(), userID, req.Points); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pointsBalanceResponse{UserID: userID, Points: balance})
}
