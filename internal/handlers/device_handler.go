package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/httpresp"
	"github.com/estilobarber/barberia-api/internal/middleware"
	"github.com/estilobarber/barberia-api/internal/models"
)

// DeviceHandler registers push targets for the authenticated user.
type DeviceHandler struct {
	db *gorm.DB
}

func NewDeviceHandler(db *gorm.DB) *DeviceHandler {
	return &DeviceHandler{db: db}
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=android ios web"`
}

// Register upserts the token for the caller. Re-registering the same
// token refreshes its timestamp instead of failing on the unique index.
func (h *DeviceHandler) Register(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request_body", "Token y plataforma son requeridos.")
		return
	}

	device := models.DeviceToken{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	}
	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
		}).
		Create(&device).Error
	if err != nil {
		httperr.Internal(c, "failed_to_register_device", "Error al registrar dispositivo.")
		return
	}

	httpresp.OK(c, device)
}
