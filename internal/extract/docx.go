package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractDocx reads word/document.xml from the ZIP archive and collects
// paragraph text. No layout or style preservation, raw text only.
func (e *Extractor) extractDocx(b []byte) (Text, error) {
	r, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return Text{}, &Error{Reason: ReasonParserFailure, Err: fmt.Errorf("open zip: %w", err)}
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return Text{}, &Error{Reason: ReasonParserFailure, Err: fmt.Errorf("word/document.xml not found in archive")}
	}

	rc, err := docFile.Open()
	if err != nil {
		return Text{}, &Error{Reason: ReasonParserFailure, Err: fmt.Errorf("open document.xml: %w", err)}
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var (
		buf         strings.Builder
		currentText strings.Builder
		inParagraph bool
	)
	for {
		tok, terr := decoder.Token()
		if terr != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				inParagraph = true
				currentText.Reset()
			}
		case xml.CharData:
			if inParagraph {
				currentText.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(text)
			}
		}
	}
	return e.finishText(buf.String(), nil, false)
}
