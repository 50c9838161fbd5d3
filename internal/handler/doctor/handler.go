package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sevaconnect/booking-api/internal/middleware"
	"github.com/sevaconnect/booking-api/internal/service/directory"
)

type Handler struct {
	service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": doctors})
}

// ListMyAppointments serves the dashboard for the authenticated doctor.
func (h *Handler) ListMyAppointments(c *gin.Context) {
	raw, exists := c.Get(middleware.ContextDoctorID)
	doctorID, ok := raw.(uuid.UUID)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing doctor identity"})
		return
	}

	appointments, err := h.service.DoctorAppointments(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointments})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)
}

func (h *Handler) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/appointments", h.ListMyAppointments)
}
