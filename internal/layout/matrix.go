package layout

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

// Grid constants shared by the forward projection and the parser.
const (
	// DeskHeightUnit is the vertical distance between centres that starts a new row.
	DeskHeightUnit = 2
	// DeskWidthUnit is the nominal desk width; centres within half of it share a column.
	DeskWidthUnit = 2
	// ColumnSpacing and RowSpacing place parsed desks on the grid.
	ColumnSpacing = 10
	RowSpacing    = 4

	EmptyCell = "--"

	cellSeparator = ","
	minLabelWidth = 3
)

// Projection is the discrete view of a desk set. Matrix rows run back to front:
// the row nearest the board is the last one.
type Projection struct {
	Matrix       [][]string
	Text         string
	Numbered     [][]string
	NumberedText string
	Positions    PositionMap
	// Numbers maps desk id to its front-to-back, left-to-right number starting at 1.
	Numbers map[string]int
}

// Rows returns the number of matrix rows.
func (p Projection) Rows() int {
	return len(p.Matrix)
}

// Cols returns the matrix width; every row has the same length.
func (p Projection) Cols() int {
	if len(p.Matrix) == 0 {
		return 0
	}
	return len(p.Matrix[0])
}

// Empty reports whether the projection holds no desks.
func (p Projection) Empty() bool {
	return p.Positions.Len() == 0
}

// Project converts freely positioned desks into the row/column matrix, the
// numbered matrix and the position map.
func Project(desks []models.Desk) Projection {
	if len(desks) == 0 {
		return Projection{
			Matrix:    [][]string{},
			Numbered:  [][]string{},
			Positions: NewPositionMap(),
			Numbers:   map[string]int{},
		}
	}

	rows := groupRows(desks)
	columns := clusterColumns(desks)
	width := len(columns)

	matrix := make([][]string, len(rows))
	for r := range matrix {
		matrix[r] = emptyRow(width)
	}

	positions := NewPositionMap()
	for r, row := range rows {
		for _, desk := range row {
			col := nearestColumn(columns, desk.CenterX())
			if matrix[r][col] != EmptyCell {
				col = firstFree(matrix[r])
				if col < 0 {
					col = width
					width++
					for i := range matrix {
						matrix[i] = append(matrix[i], EmptyCell)
					}
				}
			}
			matrix[r][col] = desk.TypeCode
			positions.set(r, col, desk.ID)
		}
	}

	numbers := make(map[string]int, len(desks))
	for i, desk := range frontToBack(rows) {
		numbers[desk.ID] = i + 1
	}

	numbered := numberedMatrix(matrix, positions, numbers)

	return Projection{
		Matrix:       matrix,
		Text:         joinMatrix(matrix),
		Numbered:     numbered,
		NumberedText: joinMatrix(numbered),
		Positions:    positions,
		Numbers:      numbers,
	}
}

// FrontToBack orders desks the way they are numbered: front row first, each row
// left to right. Rows are grouped with the same tolerance as the matrix.
func FrontToBack(desks []models.Desk) []models.Desk {
	if len(desks) == 0 {
		return []models.Desk{}
	}
	return frontToBack(groupRows(desks))
}

// Parse builds desks from matrix text. Ragged rows are tolerated, "--" and blank
// cells are skipped and blank lines do not count as rows. Desks are centred in
// their grid cell so parsed columns line up regardless of desk width.
func Parse(text string) []models.Desk {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	desks := make([]models.Desk, 0)
	row := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for col, raw := range strings.Split(line, cellSeparator) {
			code := strings.TrimSpace(raw)
			if code == "" || code == EmptyCell {
				continue
			}
			tpl, _ := models.TemplateFor(code)
			offset := (ColumnSpacing - tpl.Width) / 2
			if offset < 0 {
				offset = 0
			}
			desks = append(desks, models.Desk{
				ID:               uuid.NewString(),
				TypeCode:         code,
				X:                col*ColumnSpacing + offset,
				Y:                row * RowSpacing,
				Width:            tpl.Width,
				Height:           tpl.Height,
				Rotation:         models.RotationNone,
				UserBlockedSeats: []int{},
				Students:         []string{},
			})
		}
		row++
	}
	return desks
}

func groupRows(desks []models.Desk) [][]models.Desk {
	sorted := models.CloneDesks(desks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]models.Desk
	var anchor float64
	for _, desk := range sorted {
		if len(rows) == 0 || math.Abs(desk.CenterY()-anchor) >= DeskHeightUnit {
			rows = append(rows, []models.Desk{desk})
			anchor = desk.CenterY()
			continue
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], desk)
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})
	}
	return rows
}

// clusterColumns greedily merges sorted, de-duplicated horizontal centres that lie
// within half a desk width of the running cluster mean.
func clusterColumns(desks []models.Desk) []float64 {
	seen := make(map[float64]struct{}, len(desks))
	centers := make([]float64, 0, len(desks))
	for _, desk := range desks {
		c := desk.CenterX()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		centers = append(centers, c)
	}
	sort.Float64s(centers)

	tolerance := float64(DeskWidthUnit) / 2
	var columns []float64
	var sum float64
	var count int
	for _, c := range centers {
		if count > 0 && math.Abs(c-sum/float64(count)) <= tolerance {
			sum += c
			count++
			columns[len(columns)-1] = sum / float64(count)
			continue
		}
		columns = append(columns, c)
		sum = c
		count = 1
	}
	return columns
}

func nearestColumn(columns []float64, center float64) int {
	best := 0
	bestDistance := math.Inf(1)
	for i, c := range columns {
		if d := math.Abs(c - center); d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return best
}

func firstFree(row []string) int {
	for i, cell := range row {
		if cell == EmptyCell {
			return i
		}
	}
	return -1
}

func emptyRow(width int) []string {
	row := make([]string, width)
	for i := range row {
		row[i] = EmptyCell
	}
	return row
}

func frontToBack(rows [][]models.Desk) []models.Desk {
	ordered := make([]models.Desk, 0)
	for r := len(rows) - 1; r >= 0; r-- {
		ordered = append(ordered, rows[r]...)
	}
	return ordered
}

func numberedMatrix(matrix [][]string, positions PositionMap, numbers map[string]int) [][]string {
	width := len("L" + strconv.Itoa(len(numbers)))
	if width < minLabelWidth {
		width = minLabelWidth
	}
	out := make([][]string, len(matrix))
	for r, row := range matrix {
		out[r] = make([]string, len(row))
		for c := range row {
			label := EmptyCell
			if id, ok := positions.Lookup(r, c); ok {
				label = fmt.Sprintf("L%d", numbers[id])
			}
			out[r][c] = fmt.Sprintf("%*s", width, label)
		}
	}
	return out
}

func joinMatrix(matrix [][]string) string {
	lines := make([]string, len(matrix))
	for i, row := range matrix {
		lines[i] = strings.Join(row, cellSeparator)
	}
	return strings.Join(lines, "\n")
}
