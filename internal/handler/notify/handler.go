package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/service/notification"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

// SendNotification is the thin HTTP front for the dispatcher. Unknown
// channel values fall back to SMS inside the service.
func (h *Handler) SendNotification(c *gin.Context) {
	var req model.Notification
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	delivered := h.service.Send(c.Request.Context(), &req)
	status := "sent"
	if !delivered {
		status = "failed"
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"delivery": status}})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/notify", h.SendNotification)
}
