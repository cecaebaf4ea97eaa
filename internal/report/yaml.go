package report

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/redfox/internal/model"
)

// YAMLWriter outputs sweep reports in YAML format.
// This format is designed for tool integration and programmatic
// processing; the field names match the yaml tags on the model types.
type YAMLWriter struct {
	baseWriter
}

// NewYAMLWriter creates a YAMLWriter that outputs to the given writer.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the sweep report as a YAML document.
func (w *YAMLWriter) Write(report *model.SweepReport) (int, error) {
	// Render to a buffer first so the byte count is exact and a marshal
	// error does not leave a partial document behind.
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
