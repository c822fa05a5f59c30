package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackforge/policy-chatbot-be/repository"
	"github.com/hackforge/policy-chatbot-be/types"
)

type HistoryHandler struct {
	history repository.HistoryRepo
}

func NewHistoryHandler(history repository.HistoryRepo) *HistoryHandler {
	return &HistoryHandler{
		history: history,
	}
}

// HandleHistory lists the recorded exchanges for a session.
func (h *HistoryHandler) HandleHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "session_id is required",
		})
		return
	}

	records, err := h.history.ListRecords(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.HistoryResponse{
			Records: records,
		},
	})
}
