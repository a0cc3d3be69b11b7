package layout

import (
	"encoding/json"
	"fmt"
)

// Cell addresses a matrix position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key renders the cell as "{row}-{col}".
func (c Cell) Key() string {
	return CellKey(c.Row, c.Col)
}

// CellKey renders a matrix position as "{row}-{col}".
func CellKey(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

// PositionMap associates matrix cells with desk ids in both directions.
type PositionMap struct {
	byCell map[Cell]string
	byDesk map[string]Cell
}

// NewPositionMap returns an empty map ready for use.
func NewPositionMap() PositionMap {
	return PositionMap{
		byCell: make(map[Cell]string),
		byDesk: make(map[string]Cell),
	}
}

func (p PositionMap) set(row, col int, deskID string) {
	cell := Cell{Row: row, Col: col}
	p.byCell[cell] = deskID
	p.byDesk[deskID] = cell
}

// Lookup returns the desk id placed at the cell.
func (p PositionMap) Lookup(row, col int) (string, bool) {
	id, ok := p.byCell[Cell{Row: row, Col: col}]
	return id, ok
}

// Cell returns where a desk was placed.
func (p PositionMap) Cell(deskID string) (Cell, bool) {
	cell, ok := p.byDesk[deskID]
	return cell, ok
}

// Len is the number of placed desks.
func (p PositionMap) Len() int {
	return len(p.byCell)
}

// Keys returns the "{row}-{col}" → desk id form.
func (p PositionMap) Keys() map[string]string {
	out := make(map[string]string, len(p.byCell))
	for cell, id := range p.byCell {
		out[cell.Key()] = id
	}
	return out
}

// MarshalJSON encodes the keyed form.
func (p PositionMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Keys())
}
