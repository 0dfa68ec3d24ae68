package service

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"github.com/portyard/yardboard/internal/app/appconfig"
)

var (
	ErrUnsupportedDocument = errors.New("unsupported file type, please upload a PDF or a text file")
	ErrImageNotSupported   = errors.New("image text recognition is not available on this server")
)

// TextExtractor pulls plain text out of schedule documents.
type TextExtractor struct {
	maxPages int
}

func NewTextExtractor(conf *appconfig.Config) *TextExtractor {
	return &TextExtractor{maxPages: conf.ScheduleMaxPdfPages}
}

// DetectType resolves the media type of an upload from its declared content
// type, falling back to its extension and then to its content.
func DetectType(fileName, contentType string, content []byte) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt != "application/octet-stream" {
		return mt
	}
	if mt, _, err := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))); err == nil {
		return mt
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(content))
	return mt
}

// ExtractText returns the text of a PDF (first pages only) or a plain text file.
func (e *TextExtractor) ExtractText(fileName, contentType string, content []byte) (string, error) {
	mt := DetectType(fileName, contentType, content)
	switch {
	case mt == "application/pdf":
		return e.extractPDF(content)
	case strings.HasPrefix(mt, "image/"):
		return "", ErrImageNotSupported
	case strings.HasPrefix(mt, "text/"):
		if !utf8.Valid(content) {
			return "", errors.New("text file is not valid UTF-8")
		}
		return string(content), nil
	default:
		return "", ErrUnsupportedDocument
	}
}

func (e *TextExtractor) extractPDF(content []byte) (text string, err error) {
	// the pdf reader panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("malformed PDF document: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", errors.Wrap(err, "failed to open PDF document")
	}

	pages := r.NumPage()
	if e.maxPages > 0 && pages > e.maxPages {
		pages = e.maxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read text of page %d", i)
		}
		fmt.Fprintf(&sb, "--- Page %d ---\n%s\n\n", i, pageText)
	}
	return sb.String(), nil
}
