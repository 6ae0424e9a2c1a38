package controllers

import (
	"net/http"

	"github.com/StevenOyar/RegenArdhi/config"
	"github.com/StevenOyar/RegenArdhi/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{Push: push}
}

type registerDeviceInput struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// POST /user/devices
func (dc *DeviceController) RegisterDevice(c *gin.Context) {
	userID := c.GetUint("userID")

	var input registerDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if dc.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications are not configured"})
		return
	}

	dev, err := dc.Push.RegisterDevice(userID, input.Platform, input.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "device": dev})
}

type togglePushInput struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// POST /user/notifications/toggle
func (dc *DeviceController) TogglePush(c *gin.Context) {
	userID := c.GetUint("userID")

	var input togglePushInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.TogglePush(config.DB, userID, *input.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "push_enabled": *input.Enabled})
}
