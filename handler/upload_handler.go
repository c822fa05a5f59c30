package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackforge/policy-chatbot-be/service"
	"github.com/hackforge/policy-chatbot-be/types"
)

type UploadHandler struct {
	fileService *service.FileService
	classifier  *service.ClassifierService
	sessions    service.SessionStore
}

func NewUploadHandler(
	fileService *service.FileService,
	classifier *service.ClassifierService,
	sessions service.SessionStore,
) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
		classifier:  classifier,
		sessions:    sessions,
	}
}

// HandleUpload accepts a multipart document, classifies it against the
// reference corpora, and opens a session for documents that match either
// corpus. An unrelated document is a normal response, not an error.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	_, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.UploadResponse{
			Message: "Invalid file",
		})
		return
	}

	const maxSize = 10 << 20
	if header.Size > maxSize {
		c.JSON(http.StatusBadRequest, types.UploadResponse{
			Message: "File too large",
		})
		return
	}

	content, err := h.fileService.ProcessUpload(header)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUnsupportedFileType) || errors.Is(err, service.ErrEmptyDocument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, types.UploadResponse{
			Message: err.Error(),
		})
		return
	}

	classification, err := h.classifier.Classify(c.Request.Context(), content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.UploadResponse{
			Message: err.Error(),
		})
		return
	}

	switch classification {
	case types.ClassificationRestricted:
		sessionID := h.sessions.Create(content, classification)
		c.JSON(http.StatusOK, types.UploadResponse{
			SessionID: sessionID,
			Message:   "Restricted document uploaded.",
		})
	case types.ClassificationAllowed:
		sessionID := h.sessions.Create(content, classification)
		c.JSON(http.StatusOK, types.UploadResponse{
			SessionID: sessionID,
			Message:   "Organizational document uploaded.",
		})
	default:
		c.JSON(http.StatusOK, types.UploadResponse{
			Message: "Not an official document.",
		})
	}
}
