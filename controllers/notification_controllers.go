package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteer-app/models"
	"github.com/volunteerhub/volunteer-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// createNotification appends a notification row on the given handle. Ledger
// controllers call it with their transaction so the notification commits or
// rolls back together with the triggering write.
func createNotification(tx *gorm.DB, userID uint, notifType, title, message string) error {
	notif := models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	return tx.Create(&notif).Error
}

// GetMyNotifications -> caller's notifications, newest first
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var notifs []models.Notification
	if err := nc.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My notifications", notifs)
}

// MarkNotificationRead -> target user only; already-read is a no-op success.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, _ := strconv.Atoi(c.Param("notif_id"))

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	if notif.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if !notif.IsRead {
		notif.IsRead = true
		if err := nc.DB.Model(&notif).Update("is_read", true).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}
