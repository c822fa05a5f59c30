package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/hackforge/policy-chatbot-be/utils"
)

// Input errors. Handlers map these to client-side failures.
var (
	ErrUnsupportedFileType = errors.New("only PDF or DOCX files are supported")
	ErrEmptyDocument       = errors.New("document is empty or unreadable")
)

// FileService stores uploaded files and extracts their text content.
type FileService struct {
	uploadDir       string
	documentService *DocumentService
}

func NewFileService(uploadDir string, documentService *DocumentService) *FileService {
	return &FileService{
		uploadDir:       uploadDir,
		documentService: documentService,
	}
}

// ProcessUpload validates the upload's extension, saves a timestamped copy
// in the upload dir, and returns the extracted text. The extracted text is
// guaranteed non-empty after trimming.
func (s *FileService) ProcessUpload(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedFileType, ext)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	destPath, err := utils.SaveUploadWithTimestamp(src, header.Filename, s.uploadDir)
	if err != nil {
		return "", err
	}

	content, err := s.documentService.ExtractFile(destPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyDocument, err)
	}
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyDocument
	}
	return content, nil
}
