package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string            `json:"name" yaml:"name"`
	Count  int               `json:"count" yaml:"count"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(t.Context(), sample{Name: "tsc", Count: 2}))

	var got sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "tsc", got.Name)
	assert.Equal(t, 2, got.Count)
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(t.Context(), sample{Name: "kvm-clock"}))
	assert.Contains(t, buf.String(), "name: kvm-clock")
}

func TestWriter_Table(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(t.Context(), sample{
		Name:   "tsc",
		Count:  1,
		Labels: map[string]string{"source": "host"},
	}))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "tsc")
	assert.Contains(t, out, "Labels.source")
}

type ownLayout struct {
	Name string `json:"name"`
}

func (o ownLayout) WriteTable(out io.Writer) error {
	_, err := fmt.Fprintf(out, "LAYOUT %s\n", o.Name)
	return err
}

func TestWriter_TableWriterOverridesFlattening(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(t.Context(), ownLayout{Name: "tsc"}))
	assert.Equal(t, "LAYOUT tsc\n", buf.String())
}

func TestWriter_TableWriterIgnoredForJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(t.Context(), ownLayout{Name: "tsc"}))
	assert.Contains(t, buf.String(), `"name": "tsc"`)
}

func TestWriter_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(t.Context(), struct{}{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)

	require.NoError(t, w.Serialize(t.Context(), sample{Name: "hpet"}))

	var got sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "hpet", got.Name)
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w := NewFileWriterOrStdout(FormatJSON, path)

	require.NoError(t, w.Serialize(t.Context(), sample{Name: "tsc"}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "Close is idempotent")

	got, err := FromFile[sample](path)
	require.NoError(t, err)
	assert.Equal(t, "tsc", got.Name)
}

func TestFormatIsUnknown(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("csv").IsUnknown())
}

func TestSupportedFormats(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())
}
