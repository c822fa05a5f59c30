package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hackforge/policy-chatbot-be/service"
	"github.com/hackforge/policy-chatbot-be/types"
)

type AskHandler struct {
	answerService *service.AnswerService
}

func NewAskHandler(answerService *service.AnswerService) *AskHandler {
	return &AskHandler{
		answerService: answerService,
	}
}

// HandleAsk answers a question, optionally scoped to an upload session.
// Business outcomes always return 200 with an answer; only infrastructure
// failures surface as server errors.
func (h *AskHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Question is required",
		})
		return
	}

	answer, err := h.answerService.Answer(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.AskResponse{
		Answer: answer,
	})
}
