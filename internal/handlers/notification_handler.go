package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/httpresp"
	"github.com/estilobarber/barberia-api/internal/middleware"
	"github.com/estilobarber/barberia-api/internal/models"
)

// NotificationHandler lets a user read and acknowledge their own
// notifications. Records belong to the recipient only.
type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var notifications []models.Notification
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Error al listar notificaciones.")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "notificacion_not_found", "Notificación no encontrada.")
		return
	}

	var n models.Notification
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "notificacion_not_found", "Notificación no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_update_notification", "Error al actualizar notificación.")
		return
	}

	n.Read = true
	if err := h.db.WithContext(c.Request.Context()).Save(&n).Error; err != nil {
		httperr.Internal(c, "failed_to_update_notification", "Error al actualizar notificación.")
		return
	}

	httpresp.OK(c, n)
}
