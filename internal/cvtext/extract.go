// Package cvtext turns CV files (plain text, PDF, DOCX) into cleaned plain text.
package cvtext

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported file extensions
const (
	ExtText = ".txt"
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
)

// UnsupportedFormatError is returned for file types that cannot be read
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported CV format: %q (want .txt, .pdf or .docx)", e.Format)
}

// FromFile reads the CV at path and returns its cleaned text. The format is chosen
// by extension.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return FromBytes(filepath.Ext(path), data)
}

// FromBytes extracts cleaned text from data in the given format (".pdf", "pdf" or
// "application/pdf" style).
func FromBytes(format string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch normalizeFormat(format) {
	case ExtText:
		text = string(data)
	case ExtPDF:
		text, err = extractPDF(data)
	case ExtDOCX:
		text, err = extractDOCX(data)
	default:
		return "", &UnsupportedFormatError{Format: format}
	}
	if err != nil {
		return "", err
	}

	cleaned := Clean(text)
	if cleaned == "" {
		return "", errors.New("no text found in CV")
	}
	return cleaned, nil
}

func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case ".txt", "txt", "text/plain":
		return ExtText
	case ".pdf", "pdf", "application/pdf":
		return ExtPDF
	case ".docx", "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ExtDOCX
	}
	return ""
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return documentXMLText(doc.Editable().GetContent())
}

// documentXMLText collects the w:t runs of a WordprocessingML body, one line per
// paragraph.
func documentXMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
