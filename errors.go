package studyquiz

import "errors"

// The three user-correctable failures. They are the only errors the
// engine ever surfaces to a caller; everything else is absorbed by
// skip-and-continue or fallback logic.
var (
	// ErrUnsupportedFormat means the uploaded file has an extension the
	// extractor does not handle.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailed means the document looked supported but could
	// not be read (corrupt file, parser failure).
	ErrExtractionFailed = errors.New("could not extract text from document")

	// ErrNoUsableMaterial means the material, after normalization,
	// contains no words a quiz could be built from.
	ErrNoUsableMaterial = errors.New("no usable material to build a quiz from")
)

// ErrNoEligibleWord is local to question synthesis: the sentence holds no
// candidate answer word. Callers skip the sentence and move on; it never
// reaches the engine boundary.
var ErrNoEligibleWord = errors.New("sentence has no eligible word")

// UserMessage maps an engine error to the message shown to the person
// who submitted the material, or "" when the error is not one of the
// surfaced kinds.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "That file type is not supported. Please upload a .pdf, .ppt or .pptx file."
	case errors.Is(err, ErrExtractionFailed):
		return "The uploaded document could not be read. Please check the file and try again."
	case errors.Is(err, ErrNoUsableMaterial):
		return "No usable study material found. Paste some text or upload a document with readable content."
	}
	return ""
}
