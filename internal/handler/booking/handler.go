package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/service/booking"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking handles the direct booking surface. The booking is always
// recorded; sync state rides along in the response.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	resp := h.service.Book(c.Request.Context(), &req)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": resp})
}

// CreateExternalBooking handles partner bookings behind the API-key guard.
func (h *Handler) CreateExternalBooking(c *gin.Context) {
	var req model.ExternalBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	resp, err := h.service.BookExternal(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, booking.ErrUnknownDoctor) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "unknown doctor_crm_id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":         "success",
		"appointment_id": resp.AppointmentCode,
		"synced":         resp.Synced,
		"message":        resp.Message,
	})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.CreateBooking)
}

func (h *Handler) RegisterExternalRoutes(r *gin.RouterGroup) {
	r.POST("/external/book", h.CreateExternalBooking)
}
