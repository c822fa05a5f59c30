package service

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hackforge/policy-chatbot-be/logger"
	"github.com/hackforge/policy-chatbot-be/types"
)

// DocumentService extracts text from uploaded files and splits it into
// overlapping chunks for embedding.
type DocumentService struct {
	chunkSize    int
	chunkOverlap int
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	ChunkSize:    500,
	ChunkOverlap: 100,
}

func NewDocumentService(config types.DocumentServiceConfig) *DocumentService {
	return &DocumentService{
		chunkSize:    config.ChunkSize,
		chunkOverlap: config.ChunkOverlap,
	}
}

// ExtractFile extracts the full text of a .pdf or .docx file.
func (s *DocumentService) ExtractFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return s.ExtractPDF(path)
	case ".docx":
		return s.ExtractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(path))
	}
}

// ExtractPDF reads a PDF page by page with pdftotext, falling back to
// tesseract OCR for pages with no text layer.
func (s *DocumentService) ExtractPDF(filePath string) (string, error) {
	totalPages, err := getNumPages(filePath)
	if err != nil {
		return "", err
	}

	var content strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := s.extractPage(filePath, pageNum)
		if err != nil {
			logger.Warnf("failed to extract text from page %d: %v", pageNum, err)
			continue
		}
		content.WriteString(text)
		content.WriteString("\n")
	}

	return s.cleanText(content.String()), nil
}

func (s *DocumentService) extractPage(filePath string, pageNumber int) (string, error) {
	text, err := extractPageWithPdftotext(filePath, pageNumber)
	if err != nil || text == "" {
		text, err = extractPageWithTesseract(filePath, pageNumber)
		if err != nil {
			return "", fmt.Errorf("failed to extract text: %w", err)
		}
	}
	return text, nil
}

// ExtractDOCX extracts paragraph text from a .docx archive. Text runs live
// in <w:t> elements of word/document.xml; paragraphs end at </w:p>.
func (s *DocumentService) ExtractDOCX(filePath string) (string, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer reader.Close()

	var docFile *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("invalid docx: missing word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read document.xml: %w", err)
	}
	defer rc.Close()

	var content strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				content.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				content.Write(t)
			}
		}
	}

	return s.cleanText(content.String()), nil
}

// ChunkText splits text into chunks of roughly chunkSize characters with
// chunkOverlap characters shared between neighbors. Chunk ends snap to the
// nearest sentence end, or word boundary when none is found.
func (s *DocumentService) ChunkText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	currentPos := 0
	for currentPos < len(text) {
		chunkEnd := currentPos + s.chunkSize
		if chunkEnd >= len(text) {
			if chunk := strings.TrimSpace(text[currentPos:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		sentenceEnd := chunkEnd
		for i := chunkEnd; i > currentPos; i-- {
			if text[i] == '.' || text[i] == '?' || text[i] == '!' {
				sentenceEnd = i + 1
				break
			}
		}
		if sentenceEnd == chunkEnd {
			for i := chunkEnd; i > currentPos; i-- {
				if text[i] == ' ' {
					sentenceEnd = i
					break
				}
			}
		}

		if chunk := strings.TrimSpace(text[currentPos:sentenceEnd]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := sentenceEnd - s.chunkOverlap
		if next <= currentPos {
			next = sentenceEnd
		}
		currentPos = next
	}

	return chunks
}

func extractPageWithPdftotext(filePath string, pageNumber int) (string, error) {
	cmd := exec.Command("pdftotext",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		filePath, "-")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for page %d: %w", pageNumber, err)
	}
	if trimmed := strings.TrimSpace(out.String()); trimmed != "" {
		return trimmed, nil
	}
	return "", fmt.Errorf("got nothing at page %d", pageNumber)
}

func extractPageWithTesseract(pdfPath string, pageNumber int) (string, error) {
	tempFolder, err := os.MkdirTemp("", "ocr-page-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempFolder)

	convertCmd := exec.Command("pdftoppm",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-png", pdfPath, filepath.Join(tempFolder, "page"))
	if err := convertCmd.Run(); err != nil {
		return "", fmt.Errorf("failed to convert page %d to image: %w", pageNumber, err)
	}

	files, err := filepath.Glob(filepath.Join(tempFolder, "page-*.png"))
	if err != nil || len(files) == 0 {
		return "", fmt.Errorf("failed to read image files: %w", err)
	}

	ocrCmd := exec.Command("tesseract",
		files[0],
		"stdout",
		"-l", "eng",
		"--oem", "3",
		"--psm", "3",
	)
	var out bytes.Buffer
	ocrCmd.Stdout = &out
	if err := ocrCmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run tesseract: %w", err)
	}
	if trimmed := strings.TrimSpace(out.String()); trimmed != "" {
		return trimmed, nil
	}
	return "", fmt.Errorf("got nothing at page %d", pageNumber)
}

func getNumPages(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	scanner := bufio.NewScanner(&out)
	re := regexp.MustCompile(`Pages:\s+(\d+)`)
	for scanner.Scan() {
		if matches := re.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}

	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

func (s *DocumentService) cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // null character
		"\ufffd": "",   // unicode replacement character
		"\u001b": "",   // escape character
		"\r":     "",   // carriage return
		"\f":     "\n", // form feed to newline
		"  ":     " ",  // collapse double spaces
	}
	cleaned := text
	for old, repl := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, repl)
	}
	return strings.TrimSpace(cleaned)
}
