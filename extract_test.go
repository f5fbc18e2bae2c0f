package studyquiz

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDeck assembles a minimal pptx-style zip with one slide part per
// entry of texts, in order.
func buildDeck(t *testing.T, texts ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, text := range texts {
		w, err := zw.Create(slidePartName(i + 1))
		require.NoError(t, err)
		_, err = w.Write([]byte(slideXML(text)))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func slidePartName(n int) string {
	return "ppt/slides/slide" + string(rune('0'+n)) + ".xml"
}

func slideXML(text string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>` +
		`</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
}

func TestExtractMaterial(t *testing.T) {
	t.Run("pasted text only", func(t *testing.T) {
		got, err := ExtractMaterial("  some   notes ", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "some notes", got)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ExtractMaterial("", "notes.docx", []byte("anything"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("no extension", func(t *testing.T) {
		_, err := ExtractMaterial("", "notes", []byte("anything"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("pptx slides in deck order", func(t *testing.T) {
		deck := buildDeck(t, "Cells divide by mitosis", "Plants use photosynthesis")
		got, err := ExtractMaterial("", "lecture.pptx", deck)
		require.NoError(t, err)
		assert.Equal(t, "Cells divide by mitosis Plants use photosynthesis", got)
	})

	t.Run("pasted text combined with document text", func(t *testing.T) {
		deck := buildDeck(t, "slide content here")
		got, err := ExtractMaterial("pasted notes", "lecture.pptx", deck)
		require.NoError(t, err)
		assert.Equal(t, "pasted notes slide content here", got)
	})

	t.Run("corrupt slide deck", func(t *testing.T) {
		_, err := ExtractMaterial("", "lecture.pptx", []byte("PK\x03\x04 but not a real zip"))
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("legacy binary ppt is rejected as unreadable", func(t *testing.T) {
		_, err := ExtractMaterial("", "old-deck.ppt", []byte{0xd0, 0xcf, 0x11, 0xe0})
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("deck with no slide parts", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("ppt/presentation.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte("<p:presentation/>"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = ExtractMaterial("", "empty.pptx", buf.Bytes())
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("pdf without header", func(t *testing.T) {
		_, err := ExtractMaterial("", "notes.pdf", []byte("plain text pretending"))
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("file present but empty falls back to pasted text", func(t *testing.T) {
		got, err := ExtractMaterial("pasted", "notes.pdf", nil)
		require.NoError(t, err)
		assert.Equal(t, "pasted", got)
	})

	t.Run("extension match is case-insensitive", func(t *testing.T) {
		deck := buildDeck(t, "upper case extension")
		_, err := ExtractMaterial("", "LECTURE.PPTX", deck)
		require.NoError(t, err)
	})
}

func TestSlideOrdering(t *testing.T) {
	// slide10 must sort after slide2, not between slide1 and slide2.
	assert.True(t, slideLess("ppt/slides/slide2.xml", "ppt/slides/slide10.xml"))
	assert.False(t, slideLess("ppt/slides/slide10.xml", "ppt/slides/slide2.xml"))
	assert.True(t, slideLess("ppt/slides/slide1.xml", "ppt/slides/slide2.xml"))
}
