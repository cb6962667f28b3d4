package aurora

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// DumpWriter appends raw API responses to a debug file, one block per
// location. Each block is the indented JSON payload prefixed with a
// coordinate comment line, so the file stays valid JSON per block after
// stripping lines starting with '#'.
type DumpWriter struct {
	path   string
	logger *zap.Logger
}

// NewDumpWriter creates a writer for the given file path.
func NewDumpWriter(path string, logger *zap.Logger) *DumpWriter {
	return &DumpWriter{path: path, logger: logger}
}

// Append writes one labeled response block.
func (w *DumpWriter) Append(lat, lon float64, raw []byte) error {
	var block bytes.Buffer
	fmt.Fprintf(&block, "# Response for lat=%v, lon=%v\n", lat, lon)

	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		// Not JSON; keep the payload verbatim rather than losing it.
		indented.Write(raw)
	}
	block.Write(indented.Bytes())
	block.WriteString("\n\n")

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.path, err)
	}
	defer f.Close()

	if _, err := f.Write(block.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}

	w.logger.Info("API response saved", zap.String("path", w.path))
	return nil
}
