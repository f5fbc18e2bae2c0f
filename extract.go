package studyquiz

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractMaterial turns pasted text plus an optional uploaded document
// into one normalized material string. When both sources are present the
// document text is appended to the pasted text. Unknown file extensions
// yield ErrUnsupportedFormat; a document that cannot be read yields
// ErrExtractionFailed. With no file, the pasted text is used as-is.
func ExtractMaterial(pasted, filename string, data []byte) (string, error) {
	pasted = Normalize(pasted)
	if filename == "" || len(data) == 0 {
		return pasted, nil
	}

	var (
		extracted string
		err       error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		extracted, err = extractPDF(data)
	case ".ppt", ".pptx":
		extracted, err = extractSlides(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	if pasted == "" {
		return extracted, nil
	}
	return pasted + " " + extracted, nil
}

func isPDF(b []byte) bool {
	// PDF starts with "%PDF-"
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	// ZIP local file header: PK\x03\x04
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

// extractPDF reads all page text, page order preserved.
func extractPDF(data []byte) (string, error) {
	if !isPDF(data) {
		return "", fmt.Errorf("missing %%PDF header")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	text := Normalize(string(b))
	if text == "" {
		return "", fmt.Errorf("no text in pdf")
	}
	return text, nil
}

// extractSlides pulls the <a:t> text runs out of every ppt/slides/*.xml
// part of a pptx container, slides in deck order. Legacy binary .ppt files
// are not zip containers and fail the container check.
func extractSlides(data []byte) (string, error) {
	if !isZip(data) {
		return "", fmt.Errorf("not a valid slide deck container")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("zip reader: %w", err)
	}

	var slides []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("no slides in deck")
	}
	sort.Slice(slides, func(i, j int) bool { return slideLess(slides[i].Name, slides[j].Name) })

	var out strings.Builder
	for _, f := range slides {
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		out.WriteString(textRuns(b))
		out.WriteString("\n")
	}

	text := Normalize(out.String())
	if text == "" {
		return "", fmt.Errorf("no text in slides")
	}
	return text, nil
}

// slideLess orders slide part names numerically so slide10 sorts after
// slide2.
func slideLess(a, b string) bool {
	an, bn := slideNumber(a), slideNumber(b)
	if an != bn {
		return an < bn
	}
	return a < b
}

func slideNumber(name string) int {
	base := strings.TrimSuffix(filepath.Base(name), ".xml")
	n := 0
	for _, r := range base {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// textRuns gathers the character data of every <a:t> element.
func textRuns(xmlBytes []byte) string {
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
		_ = dec.DecodeElement(&v, &se)
		if v != "" {
			out.WriteString(v)
			out.WriteString(" ")
		}
	}
	return out.String()
}
