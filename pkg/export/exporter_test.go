package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterDataset() Dataset {
	return Dataset{
		Title:   "Roster: Intro to Go",
		Headers: []string{"name", "email"},
		Rows: []map[string]string{
			{"name": "Ada", "email": "ada@example.com"},
			{"name": "Linus, T.", "email": "linus@example.com"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.Equal(t, "name,email\nAda,ada@example.com\n\"Linus, T.\",linus@example.com\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exp := NewPDFExporter()
	out, err := exp.Render(rosterDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", exp.ContentType())
}
