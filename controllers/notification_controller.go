package controllers

import (
	"net/http"

	"github.com/StevenOyar/RegenArdhi/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(n *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: n}
}

// GET /notifications/api/list
func (nc *NotificationController) List(c *gin.Context) {
	userID := c.GetUint("userID")

	items, unread, err := nc.Notifications.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": items, "unread_count": unread})
}

// GET /notifications/api/unread-count
func (nc *NotificationController) UnreadCount(c *gin.Context) {
	userID := c.GetUint("userID")

	count, err := nc.Notifications.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "unread_count": count})
}

type markReadInput struct {
	NotificationID *uint `json:"notification_id"` // nil marks all
}

// POST /notifications/api/mark-read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID := c.GetUint("userID")

	var input markReadInput
	_ = c.ShouldBindJSON(&input)

	if err := nc.Notifications.MarkRead(userID, input.NotificationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type archiveInput struct {
	NotificationID *uint `json:"notification_id"` // nil archives all read
}

// POST /notifications/api/archive
func (nc *NotificationController) Archive(c *gin.Context) {
	userID := c.GetUint("userID")

	var input archiveInput
	_ = c.ShouldBindJSON(&input)

	if err := nc.Notifications.Archive(userID, input.NotificationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /notifications/api/delete/:id
func (nc *NotificationController) Delete(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := nc.Notifications.Delete(userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /notifications/api/preferences
func (nc *NotificationController) GetPreferences(c *gin.Context) {
	userID := c.GetUint("userID")

	pref, err := nc.Notifications.Preferences(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": pref})
}

// POST /notifications/api/preferences
func (nc *NotificationController) UpdatePreferences(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.PreferenceUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := nc.Notifications.UpdatePreferences(userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": pref})
}
