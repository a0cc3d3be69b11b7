package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
	"github.com/noah-isme/classroom-seating-api/pkg/export"
)

// Seat states written to the CSV seat list.
const (
	SeatStatusTaken   = "obsazeno"
	SeatStatusFree    = layout.EmptySeatToken
	SeatStatusBlocked = layout.BlockedSeatToken
)

const defaultChartTitle = "Zasedací pořádek"

type chartRenderer interface {
	Render(chart export.Chart) ([]byte, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ChartServiceConfig tunes runtime behaviour.
type ChartServiceConfig struct {
	Title string
}

// ChartInput is the arrangement to print.
type ChartInput struct {
	Classroom   string
	Arrangement []models.Desk
}

// ChartService renders arrangements as a printable PDF chart or a CSV seat list.
type ChartService struct {
	pdf   chartRenderer
	csv   tableRenderer
	title string
	now   func() time.Time
}

// NewChartService constructs a ChartService; nil renderers fall back to pkg/export.
func NewChartService(pdf chartRenderer, csv tableRenderer, cfg ChartServiceConfig) *ChartService {
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = defaultChartTitle
	}
	return &ChartService{pdf: pdf, csv: csv, title: cfg.Title, now: time.Now}
}

// PDF draws the arrangement with desk numbers and names.
func (s *ChartService) PDF(in ChartInput) ([]byte, error) {
	if len(in.Arrangement) == 0 {
		return nil, appErrors.ErrNoArrangement
	}
	projection := layout.Project(in.Arrangement)

	chart := export.Chart{
		Title:    s.title,
		Subtitle: s.subtitle(in.Classroom),
		Desks:    make([]export.ChartDesk, 0, len(in.Arrangement)),
	}
	for _, desk := range in.Arrangement {
		seats := make([]export.ChartSeat, desk.SeatCount())
		for i := range seats {
			seats[i].Blocked = !desk.IsOccupiable(i)
			if i < len(desk.Students) {
				seats[i].Name = desk.Students[i]
			}
		}
		chart.Desks = append(chart.Desks, export.ChartDesk{
			Label:  "L" + strconv.Itoa(projection.Numbers[desk.ID]),
			X:      float64(desk.X),
			Y:      float64(desk.Y),
			Width:  float64(desk.Width),
			Height: float64(desk.Height),
			Seats:  seats,
		})
	}

	payload, err := s.pdf.Render(chart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render seating chart")
	}
	return payload, nil
}

// CSV lists every seat front to back with its occupant and state.
func (s *ChartService) CSV(in ChartInput) ([]byte, error) {
	if len(in.Arrangement) == 0 {
		return nil, appErrors.ErrNoArrangement
	}
	projection := layout.Project(in.Arrangement)

	table := export.Table{Headers: []string{"lavice", "misto", "zak", "stav"}}
	for _, desk := range layout.FrontToBack(in.Arrangement) {
		label := "L" + strconv.Itoa(projection.Numbers[desk.ID])
		for i := 0; i < desk.SeatCount(); i++ {
			name := ""
			if i < len(desk.Students) {
				name = desk.Students[i]
			}
			status := SeatStatusFree
			switch {
			case !desk.IsOccupiable(i):
				status = SeatStatusBlocked
			case name != "":
				status = SeatStatusTaken
			}
			table.Rows = append(table.Rows, []string{label, strconv.Itoa(i + 1), name, status})
		}
	}

	payload, err := s.csv.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render seat list")
	}
	return payload, nil
}

func (s *ChartService) subtitle(classroom string) string {
	date := s.now().Format("2. 1. 2006")
	if classroom == "" {
		return date
	}
	return fmt.Sprintf("%s, %s", classroom, date)
}
