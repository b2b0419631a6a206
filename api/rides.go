package api

import (
	"net/http"

	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/dhawal37/ecorides/internal/service/rides"
	"github.com/gin-gonic/gin"
)

type RideHandler struct {
	service rides.RideUseCase
}

func NewRideHandler(service rides.RideUseCase) *RideHandler {
	return &RideHandler{service: service}
}

func (h *RideHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.offer)
	router.DELETE("/:id", h.cancel)
	router.GET("/user/:user_id", h.listOffered)
}

func (h *RideHandler) list(c *gin.Context) {
	filter := domain.RideFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
		Date: c.Query("date"),
	}

	rides, err := h.service.ListAvailable(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (h *RideHandler) offer(c *gin.Context) {
	var req rides.OfferRideInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ride, err := h.service.Offer(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ride)
}

func (h *RideHandler) cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RideHandler) listOffered(c *gin.Context) {
	offered, err := h.service.ListOffered(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, offered)
}
