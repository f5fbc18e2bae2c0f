package studyquiz

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transcript records one generation request's remote traffic to a file
// so failed or strange replies can be inspected afterwards. A nil
// receiver is valid and discards everything, so callers never have to
// guard their logging.
type Transcript struct {
	file *os.File
	mu   sync.Mutex
}

// openTranscript creates a transcript file under dir, or returns a
// discarding nil transcript when dir is "" or the file cannot be
// created. Transcript trouble must never block generation.
func openTranscript(dir string) *Transcript {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		VerboseLog("failed to create transcript directory: %v", err)
		return nil
	}
	name := filepath.Join(dir, fmt.Sprintf("%s.log", uuid.NewString()))
	file, err := os.Create(name)
	if err != nil {
		VerboseLog("failed to create transcript file: %v", err)
		return nil
	}
	t := &Transcript{file: file}
	t.logf("=== Remote Generation Transcript ===\n")
	t.logf("Started: %s\n\n", time.Now().Format(time.RFC3339))
	return t
}

func (t *Transcript) logf(format string, args ...interface{}) {
	if t == nil || t.file == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(t.file, "[%s] ", timestamp)
	fmt.Fprintf(t.file, format, args...)
	t.file.Sync()
}

// Request records the outgoing prompt.
func (t *Transcript) Request(prompt string) {
	t.logf("=== REQUEST ===\n%s\n\n", prompt)
}

// Response records the raw service reply before any parsing.
func (t *Transcript) Response(raw string) {
	t.logf("=== RESPONSE ===\n%s\n\n", raw)
}

// Note records a free-form event such as a parse failure or fallback.
func (t *Transcript) Note(msg string) {
	t.logf("NOTE: %s\n", msg)
}

// Close finishes and closes the transcript file.
func (t *Transcript) Close() error {
	if t == nil || t.file == nil {
		return nil
	}
	t.logf("=== Transcript Complete ===\n")
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file.Close()
}
