// Package docparse extracts plain text from uploaded files for quiz
// generation. Supported formats: PDF, DOCX, XLSX, TXT, MD.
package docparse

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupported is returned for file types the parser does not handle.
var ErrUnsupported = errors.New("unsupported file type. Supported formats: PDF, DOCX, XLSX, TXT, MD")

// Parser converts uploaded files into plain text.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse dispatches on the lowercased filename extension and returns the
// extracted text content.
func (p *Parser) Parse(filename string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return parsePDF(r)
	case ".docx":
		return parseDOCX(r)
	case ".xlsx":
		return parseXLSX(r)
	case ".txt", ".md":
		return parsePlainText(r)
	default:
		return "", ErrUnsupported
	}
}

func parsePlainText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}
