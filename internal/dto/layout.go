package dto

import "github.com/noah-isme/classroom-seating-api/internal/models"

// DeskPayload describes a desk supplied by the client. Width and height may be
// omitted to use the palette size.
type DeskPayload struct {
	ID               string `json:"id" validate:"omitempty,max=64"`
	TypeCode         string `json:"typeCode" validate:"required,max=16"`
	X                int    `json:"x" validate:"min=0"`
	Y                int    `json:"y" validate:"min=0"`
	Width            int    `json:"width" validate:"min=0"`
	Height           int    `json:"height" validate:"min=0"`
	Rotation         int    `json:"rotation" validate:"oneof=0 90"`
	UserBlockedSeats []int  `json:"userBlockedSeats" validate:"omitempty,dive,min=0"`
}

// Model converts the payload into a desk.
func (p DeskPayload) Model() models.Desk {
	return models.Desk{
		ID:               p.ID,
		TypeCode:         p.TypeCode,
		X:                p.X,
		Y:                p.Y,
		Width:            p.Width,
		Height:           p.Height,
		Rotation:         p.Rotation,
		UserBlockedSeats: p.UserBlockedSeats,
	}
}

// ReplaceLayoutRequest swaps the whole desk set.
type ReplaceLayoutRequest struct {
	Desks []DeskPayload `json:"desks" validate:"max=500,dive"`
}

// AddDeskRequest drops a palette desk at a position.
type AddDeskRequest struct {
	TypeCode string `json:"typeCode" validate:"required,max=16"`
	X        int    `json:"x" validate:"min=0"`
	Y        int    `json:"y" validate:"min=0"`
}

// MoveDeskRequest relocates a desk's top-left corner.
type MoveDeskRequest struct {
	X *int `json:"x" validate:"required,min=0"`
	Y *int `json:"y" validate:"required,min=0"`
}

// ImportMatrixRequest carries comma-separated matrix text.
type ImportMatrixRequest struct {
	Text string `json:"text" validate:"max=20000"`
}

// DeskChangeResponse reports an editor operation. Applied is false when the
// placement was refused and nothing changed.
type DeskChangeResponse struct {
	Desk    models.Desk `json:"desk"`
	Applied bool        `json:"applied"`
}

// MatrixResponse is the matrix view of a layout.
type MatrixResponse struct {
	Rows         int               `json:"rows"`
	Cols         int               `json:"cols"`
	Matrix       [][]string        `json:"matrix"`
	Text         string            `json:"text"`
	Numbered     [][]string        `json:"numbered"`
	NumberedText string            `json:"numberedText"`
	Positions    map[string]string `json:"positions"`
	Numbers      map[string]int    `json:"numbers"`
}

// LayoutResponse returns desks front to back with the matrix view.
type LayoutResponse struct {
	Desks          []models.Desk  `json:"desks"`
	AvailableSeats int            `json:"availableSeats"`
	Matrix         MatrixResponse `json:"matrix"`
}
