package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"
	"github.com/StevenOyar/RegenArdhi/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Projects *services.ProjectService
	Chat     *services.ChatService
}

func NewChatController(projects *services.ProjectService, chat *services.ChatService) *ChatController {
	return &ChatController{Projects: projects, Chat: chat}
}

// resolveProject loads an optional, ownership-checked project. A project
// the caller does not own is treated as absent rather than an error.
func (cc *ChatController) resolveProject(userID uint, projectID *uint) *models.Project {
	if projectID == nil {
		return nil
	}
	project, err := cc.Projects.Get(userID, *projectID)
	if err != nil {
		return nil
	}
	return project
}

type chatMessageInput struct {
	Message   string `json:"message" binding:"required"`
	ProjectID *uint  `json:"project_id"`
}

// POST /chat/api/message
func (cc *ChatController) Message(c *gin.Context) {
	userID := c.GetUint("userID")

	var input chatMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := cc.resolveProject(userID, input.ProjectID)
	response, err := cc.Chat.Message(userID, project, input.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"response":  response,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func queryProjectID(c *gin.Context) *uint {
	raw := c.Query("project_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(id)
	return &u
}

// GET /chat/api/history?project_id=&limit=
func (cc *ChatController) History(c *gin.Context) {
	userID := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	msgs, err := cc.Chat.History(userID, queryProjectID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": msgs})
}

// POST /chat/api/clear
func (cc *ChatController) Clear(c *gin.Context) {
	userID := c.GetUint("userID")

	var input struct {
		ProjectID *uint `json:"project_id"`
	}
	_ = c.ShouldBindJSON(&input)

	if err := cc.Chat.Clear(userID, input.ProjectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /chat/api/suggestions?project_id=
func (cc *ChatController) Suggestions(c *gin.Context) {
	userID := c.GetUint("userID")

	project := cc.resolveProject(userID, queryProjectID(c))
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": cc.Chat.Suggestions(project),
	})
}
