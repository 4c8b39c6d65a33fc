package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func (e *Extractor) extractPDF(b []byte) (Text, error) {
	var (
		buf       strings.Builder
		markers   []string
		truncated bool
		openErr   error
	)
	panicErr := pdfGuard(func() {
		reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
		if err != nil {
			openErr = fmt.Errorf("open pdf: %w", err)
			return
		}
		total := reader.NumPage()
		pages := total
		if pages > e.pageCap {
			pages = e.pageCap
			truncated = true
		}
		for n := 1; n <= pages; n++ {
			page := reader.Page(n)
			if page.V.IsNull() {
				continue
			}
			text, perr := page.GetPlainText(nil)
			if perr != nil {
				// Skip unreadable pages; a single bad page should not sink the document.
				continue
			}
			text = strings.Join(strings.Fields(text), " ")
			if text == "" {
				continue
			}
			marker := fmt.Sprintf("--- Page %d ---", n)
			markers = append(markers, marker)
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(marker)
			buf.WriteString("\n")
			buf.WriteString(text)
			if buf.Len() >= e.charCap {
				if n < total {
					truncated = true
				}
				break
			}
		}
	})
	if panicErr != nil {
		return Text{}, &Error{Reason: ReasonParserFailure, Partial: buf.String(), Err: panicErr}
	}
	if openErr != nil {
		return Text{}, &Error{Reason: ReasonParserFailure, Err: openErr}
	}
	return e.finishText(buf.String(), markers, truncated)
}

// pdfGuard runs fn and converts a panic into an error. ledongthuc/pdf panics
// on some malformed xref tables and content streams; pages collected before
// the panic stay in the caller's buffer.
func pdfGuard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()
	fn()
	return nil
}
