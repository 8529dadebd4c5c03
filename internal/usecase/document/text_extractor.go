package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"docassist/internal/domain/entity"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

// TextExtractor converts raw file bytes into a single text string based on
// the file extension.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract dispatches on the lowercased extension (".txt", ".pdf", ".docx").
func (te *TextExtractor) Extract(content []byte, extension string) (string, error) {
	switch strings.ToLower(extension) {
	case ".txt":
		return te.extractPlainText(content), nil
	case ".pdf":
		return te.extractPDF(content)
	case ".docx":
		return te.extractDOCX(content)
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFileType, extension)
	}
}

// extractPlainText decodes UTF-8 with a Windows-1252 fallback; as a last
// resort invalid sequences are dropped, so it never fails.
func (te *TextExtractor) extractPlainText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(content); err == nil {
		return string(decoded)
	}
	return strings.ToValidUTF8(string(content), "")
}

// extractPDF concatenates per-page text with newline separators.
func (te *TextExtractor) extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to extract text from PDF: %w", err)
	}

	var fullText strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from PDF page %d: %w", i, err)
		}

		fullText.WriteString(text)
		fullText.WriteString("\n")
	}

	return fullText.String(), nil
}

// extractDOCX reads word/document.xml out of the OOXML archive and joins
// paragraph text with newlines.
func (te *TextExtractor) extractDOCX(content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
		}

		return parseDocumentXML(data)
	}

	return "", fmt.Errorf("failed to extract text from DOCX: word/document.xml not found")
}

// documentXML mirrors the parts of word/document.xml we read: paragraphs,
// their runs and the text elements inside them.
type documentXML struct {
	Body struct {
		Paragraphs []struct {
			Runs []struct {
				Text []struct {
					Content string `xml:",chardata"`
				} `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"body"`
}

func parseDocumentXML(data []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
	}

	var result strings.Builder
	for _, para := range doc.Body.Paragraphs {
		for _, run := range para.Runs {
			for _, text := range run.Text {
				result.WriteString(text.Content)
			}
		}
		result.WriteString("\n")
	}

	return result.String(), nil
}

// NormalizeText collapses whitespace runs within each line and drops lines
// that become empty, preserving line boundaries. Idempotent.
func NormalizeText(text string) string {
	lines := strings.Split(text, "\n")

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
