package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Table{
		Headers: []string{"lavice", "misto", "zak"},
		Rows: [][]string{
			{"1", "1", "Novák, Jan"},
			{"1", "2"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "lavice,misto,zak\n1,1,\"Novák, Jan\"\n1,2,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	chart := Chart{
		Title:    "Zasedací pořádek",
		Subtitle: "7.B",
		Desks: []ChartDesk{
			{Label: "L1", X: 0, Y: 8, Width: 4, Height: 2, Seats: []ChartSeat{{Name: "Jiří Čermák"}, {Blocked: true}}},
			{Label: "L2", X: 10, Y: 0, Width: 2, Height: 4, Seats: []ChartSeat{{Name: "Anna"}, {Name: "Eva"}}},
		},
	}

	out, err := NewPDFExporter().Render(chart)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRendersEmptyChart(t *testing.T) {
	out, err := NewPDFExporter().Render(Chart{Title: "Prázdná třída"})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFTextFoldsDiacritics(t *testing.T) {
	assert.Equal(t, "Jiri Cermak", pdfText("Jiří Čermák"))
	assert.Equal(t, "zluty kun", pdfText("žlutý kůň"))
}
