// Package extract turns uploaded PDF/DOCX bytes into best-effort plain text.
package extract

import (
	"fmt"
	"strings"

	"paperplanner/internal/util"
)

type Reason string

const (
	ReasonUnsupportedType Reason = "unsupported_type"
	ReasonParserFailure   Reason = "parser_failure"
	ReasonReadFailure     Reason = "read_failure"
)

// Error is the typed extraction failure. Partial carries any text recovered
// before the failure so callers can surface it to the user.
type Error struct {
	Reason  Reason
	Partial string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extract: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Input is the pipeline's only formal input contract for an uploaded file.
type Input struct {
	Bytes    []byte
	FileName string
	MimeType string
}

// Text is plain text derived from one uploaded document.
type Text struct {
	Content     string
	Truncated   bool
	PageMarkers []string
}

const (
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type Extractor struct {
	charCap int
	pageCap int
}

func New(charCap, pageCap int) *Extractor {
	if charCap <= 0 {
		charCap = 20000
	}
	if pageCap <= 0 {
		pageCap = 20
	}
	return &Extractor{charCap: charCap, pageCap: pageCap}
}

// Extract dispatches purely on the declared MIME type / filename suffix.
// It never retains the input buffer after returning.
func (e *Extractor) Extract(in Input) (Text, error) {
	if len(in.Bytes) == 0 {
		return Text{}, &Error{Reason: ReasonReadFailure, Err: fmt.Errorf("empty file %q", in.FileName)}
	}
	switch {
	case isPDF(in):
		return e.extractPDF(in.Bytes)
	case isDocx(in):
		return e.extractDocx(in.Bytes)
	default:
		return Text{}, &Error{Reason: ReasonUnsupportedType, Err: fmt.Errorf("file %q (%s) is neither PDF nor DOCX", in.FileName, in.MimeType)}
	}
}

func isPDF(in Input) bool {
	if strings.EqualFold(strings.TrimSpace(in.MimeType), MimePDF) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(in.FileName), ".pdf")
}

func isDocx(in Input) bool {
	if strings.EqualFold(strings.TrimSpace(in.MimeType), MimeDocx) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(in.FileName), ".docx")
}

// finishText sanitizes and applies the cumulative character cap shared by
// both parsers. The cap bounds downstream prompt size, not correctness.
func (e *Extractor) finishText(content string, markers []string, truncated bool) (Text, error) {
	content = util.SanitizeText(content)
	if capped, cut := util.CapRunes(content, e.charCap); cut {
		content = strings.TrimSpace(capped)
		truncated = true
	}
	if content == "" {
		return Text{}, &Error{Reason: ReasonParserFailure, Err: util.ErrNoExtractableText}
	}
	return Text{Content: content, Truncated: truncated, PageMarkers: markers}, nil
}
