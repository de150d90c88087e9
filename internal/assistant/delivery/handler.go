package delivery

import (
	"net/http"
	"strings"

	"curalink-backend/internal/assistant/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	assistantUsecase usecase.AssistantUsecase
	logger           *zap.Logger
}

func NewAssistantHandler(assistantUsecase usecase.AssistantUsecase, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{assistantUsecase: assistantUsecase, logger: logger.Named("assistant.http")}
}

type textRequest struct {
	Text string `json:"text"`
}

type chatRequest struct {
	Message string                `json:"message"`
	History []usecase.ChatMessage `json:"history"`
}

// POST /api/ai/parse-condition
func (h *AssistantHandler) ParseCondition(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	c.JSON(http.StatusOK, h.assistantUsecase.ParseCondition(c.Request.Context(), req.Text))
}

// POST /api/ai/summarize
func (h *AssistantHandler) Summarize(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": h.assistantUsecase.Summarize(c.Request.Context(), req.Text)})
}

// POST /api/ai/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.assistantUsecase.Chat(c.Request.Context(), req.Message, req.History)
	if err != nil {
		h.logger.Error("chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
