package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// MIME types accepted for uploaded materials.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimePPT  = "application/vnd.ms-powerpoint"
)

// Supported reports whether mimeType is one of the accepted document types.
func Supported(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOCX, MimeDOC, MimePPTX, MimePPT:
		return true
	}
	return false
}

// Text extracts plain text from a document based on its declared MIME type.
func Text(mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("plik jest pusty")
	}

	switch mimeType {
	case MimePDF:
		return extractPDF(data)
	case MimeDOCX, MimeDOC:
		return extractDOCX(data)
	case MimePPTX, MimePPT:
		return extractPPTX(data)
	default:
		return "", fmt.Errorf("nieobsługiwany typ pliku: %s", mimeType)
	}
}

// EstimatePageCount estimates the number of pages from extracted text length.
// Presentations carry far less text per slide than PDFs per page, so the
// characters-per-page divisor depends on the document type. Result is clamped
// to [1, 50].
func EstimatePageCount(mimeType string, text string) int {
	var charsPerPage int
	switch mimeType {
	case MimeDOCX, MimeDOC:
		charsPerPage = 2500
	case MimePPTX, MimePPT:
		charsPerPage = 500
	default:
		charsPerPage = 2000
	}

	pages := int(math.Ceil(float64(len(text)) / float64(charsPerPage)))
	if pages < 1 {
		pages = 1
	}
	if pages > 50 {
		pages = 50
	}
	return pages
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("błąd podczas czytania PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("błąd podczas czytania PDF: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("błąd podczas czytania PDF: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

// extractDOCX reads word/document.xml from the zip container and gathers the
// contents of <w:t> elements.
func extractDOCX(data []byte) (string, error) {
	text, err := openXMLText(data, func(name string) bool {
		return name == "word/document.xml"
	})
	if err != nil {
		return "", fmt.Errorf("błąd podczas czytania DOCX: %w", err)
	}
	return text, nil
}

// extractPPTX scans ppt/slides/*.xml and gathers the contents of <a:t>
// elements across all slides.
func extractPPTX(data []byte) (string, error) {
	text, err := openXMLText(data, func(name string) bool {
		return strings.HasPrefix(name, "ppt/slides/") && strings.HasSuffix(name, ".xml")
	})
	if err != nil {
		return "", fmt.Errorf("błąd podczas czytania PPTX: %w", err)
	}
	return text, nil
}

func openXMLText(data []byte, match func(name string) bool) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, f := range zr.File {
		if !match(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		out.WriteString(textElements(b))
		out.WriteString("\n")
	}

	s := collapseWhitespace(out.String())
	if s == "" {
		return "", fmt.Errorf("nie znaleziono tekstu w dokumencie")
	}
	return s, nil
}

// textElements collects the character data of every element whose local name
// is "t" (covers both <w:t> and <a:t>).
func textElements(xmlBytes []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "t" {
			continue
		}
		var v string
		if err := dec.DecodeElement(&v, &se); err != nil {
			continue
		}
		if v != "" {
			out.WriteString(v)
			out.WriteString(" ")
		}
	}
	return out.String()
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
