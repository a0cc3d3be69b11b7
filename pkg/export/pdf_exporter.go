package export

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Chart describes a classroom drawing: desks in room coordinates, the board
// below the front row.
type Chart struct {
	Title    string
	Subtitle string
	Desks    []ChartDesk
}

// ChartDesk is one desk rectangle with its seats from left to right.
type ChartDesk struct {
	Label  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Seats  []ChartSeat
}

// ChartSeat is a seat label; blocked seats are shaded.
type ChartSeat struct {
	Name    string
	Blocked bool
}

const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	pageMargin   = 12.0
	headerHeight = 18.0
	boardHeight  = 8.0
	boardGap     = 6.0
	maxUnit      = 12.0
)

// PDFExporter renders seating charts on a landscape A4 page.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the chart. A chart without desks still produces a page with the
// title and board.
func (e *PDFExporter) Render(chart Chart) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, pdfText(chart.Title), "", 1, "C", false, 0, "")
	if chart.Subtitle != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, pdfText(chart.Subtitle), "", 1, "C", false, 0, "")
	}

	minX, minY, maxX, maxY := bounds(chart.Desks)
	areaWidth := pageWidth - 2*pageMargin
	areaHeight := pageHeight - 2*pageMargin - headerHeight - boardHeight - boardGap
	unit := maxUnit
	if w := maxX - minX; w > 0 && areaWidth/w < unit {
		unit = areaWidth / w
	}
	if h := maxY - minY; h > 0 && areaHeight/h < unit {
		unit = areaHeight / h
	}
	offsetX := pageMargin + (areaWidth-(maxX-minX)*unit)/2
	offsetY := pageMargin + headerHeight

	for _, desk := range chart.Desks {
		x := offsetX + (desk.X-minX)*unit
		y := offsetY + (desk.Y-minY)*unit
		drawDesk(pdf, desk, x, y, desk.Width*unit, desk.Height*unit)
	}

	boardY := offsetY + (maxY-minY)*unit + boardGap
	boardWidth := areaWidth / 3
	pdf.SetFillColor(60, 60, 60)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(pageMargin+(areaWidth-boardWidth)/2, boardY)
	pdf.CellFormat(boardWidth, boardHeight, pdfText("Tabule"), "1", 0, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawDesk(pdf *gofpdf.Fpdf, desk ChartDesk, x, y, w, h float64) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.Rect(x, y, w, h, "D")

	seats := len(desk.Seats)
	if seats == 0 {
		return
	}
	vertical := h > w
	seatW, seatH := w/float64(seats), h
	if vertical {
		seatW, seatH = w, h/float64(seats)
	}

	fontSize := seatH * 0.9
	if fontSize > 8 {
		fontSize = 8
	}
	if fontSize < 4 {
		fontSize = 4
	}
	pdf.SetFont("Arial", "", fontSize)

	for i, seat := range desk.Seats {
		sx, sy := x+float64(i)*seatW, y
		if vertical {
			sx, sy = x, y+float64(i)*seatH
		}
		fill := false
		if seat.Blocked {
			pdf.SetFillColor(200, 200, 200)
			fill = true
		}
		pdf.SetXY(sx, sy)
		pdf.CellFormat(seatW, seatH, pdfText(fit(pdf, seat.Name, seatW-1)), "1", 0, "C", fill, 0, "")
	}

	if desk.Label != "" {
		pdf.SetFont("Arial", "I", 6)
		pdf.SetXY(x, y-3)
		pdf.CellFormat(w, 3, pdfText(desk.Label), "", 0, "L", false, 0, "")
	}
}

func bounds(desks []ChartDesk) (minX, minY, maxX, maxY float64) {
	for i, desk := range desks {
		if i == 0 || desk.X < minX {
			minX = desk.X
		}
		if i == 0 || desk.Y < minY {
			minY = desk.Y
		}
		if i == 0 || desk.X+desk.Width > maxX {
			maxX = desk.X + desk.Width
		}
		if i == 0 || desk.Y+desk.Height > maxY {
			maxY = desk.Y + desk.Height
		}
	}
	return minX, minY, maxX, maxY
}

// fit shortens a name until it fits the seat width.
func fit(pdf *gofpdf.Fpdf, name string, width float64) string {
	rs := []rune(name)
	for len(rs) > 1 && pdf.GetStringWidth(pdfText(string(rs))) > width {
		rs = rs[:len(rs)-1]
	}
	return string(rs)
}

// pdfText folds diacritics so text renders with the core cp1252 fonts.
func pdfText(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}
