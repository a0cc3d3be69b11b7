package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-seating-api/internal/models"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
	"github.com/noah-isme/classroom-seating-api/pkg/export"
)

type captureChartRenderer struct {
	chart export.Chart
	err   error
}

func (c *captureChartRenderer) Render(chart export.Chart) ([]byte, error) {
	c.chart = chart
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-fake"), nil
}

func chartArrangement() []models.Desk {
	return []models.Desk{
		{ID: "back", TypeCode: "101", X: 0, Y: 0, Width: 6, Height: 2, Students: []string{"Jan", "", ""}},
		{ID: "front", TypeCode: "11", X: 0, Y: 8, Width: 4, Height: 2, UserBlockedSeats: []int{1}, Students: []string{"Eva", ""}},
	}
}

func TestChartServiceCSV(t *testing.T) {
	svc := NewChartService(nil, nil, ChartServiceConfig{})

	out, err := svc.CSV(ChartInput{Arrangement: chartArrangement()})

	require.NoError(t, err)
	assert.Equal(t, "lavice,misto,zak,stav\n"+
		"L1,1,Eva,obsazeno\n"+
		"L1,2,,blokováno\n"+
		"L2,1,Jan,obsazeno\n"+
		"L2,2,,blokováno\n"+
		"L2,3,,prázdné\n", string(out))
}

func TestChartServicePDFBuildsChart(t *testing.T) {
	renderer := &captureChartRenderer{}
	svc := NewChartService(renderer, nil, ChartServiceConfig{Title: "Rozsazení"})
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) }

	out, err := svc.PDF(ChartInput{Classroom: "7.A", Arrangement: chartArrangement()})

	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, "Rozsazení", renderer.chart.Title)
	assert.Equal(t, "7.A, 1. 9. 2026", renderer.chart.Subtitle)
	require.Len(t, renderer.chart.Desks, 2)
	back := renderer.chart.Desks[0]
	assert.Equal(t, "L2", back.Label)
	assert.Equal(t, []export.ChartSeat{{Name: "Jan"}, {Blocked: true}, {}}, back.Seats)
}

func TestChartServiceRealPDF(t *testing.T) {
	svc := NewChartService(nil, nil, ChartServiceConfig{})

	out, err := svc.PDF(ChartInput{Arrangement: chartArrangement()})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestChartServiceErrors(t *testing.T) {
	svc := NewChartService(&captureChartRenderer{err: errors.New("font")}, nil, ChartServiceConfig{})

	_, err := svc.PDF(ChartInput{})
	assert.ErrorIs(t, err, appErrors.ErrNoArrangement)
	_, err = svc.CSV(ChartInput{})
	assert.ErrorIs(t, err, appErrors.ErrNoArrangement)

	_, err = svc.PDF(ChartInput{Arrangement: chartArrangement()})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
