package models

// Size of a desk whose type code is not in the palette.
const (
	DefaultDeskWidth  = 2
	DefaultDeskHeight = 2
)

// DeskTemplate describes a desk kind offered by the editor palette.
type DeskTemplate struct {
	TypeCode string `json:"typeCode"`
	Label    string `json:"label"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Seats    int    `json:"seats"`
}

// Palette lists the desk kinds the editor offers, in display order.
var Palette = []DeskTemplate{
	{TypeCode: "1", Label: "Jednomístná lavice", Width: 2, Height: 2, Seats: 1},
	{TypeCode: "11", Label: "Dvoumístná lavice", Width: 4, Height: 2, Seats: 2},
	{TypeCode: "111", Label: "Trojmístná lavice", Width: 6, Height: 2, Seats: 3},
	{TypeCode: "101", Label: "Trojlavice s volným středem", Width: 6, Height: 2, Seats: 2},
	{TypeCode: "1111", Label: "Čtyřmístná lavice", Width: 8, Height: 2, Seats: 4},
	{TypeCode: "1001", Label: "Čtyřlavice s volným středem", Width: 8, Height: 2, Seats: 2},
	{TypeCode: "00", Label: "Dvoumístná lavice (starší formát)", Width: 4, Height: 2, Seats: 2},
}

// TemplateFor returns the palette entry for a type code, or a default-sized
// template when the code is unknown.
func TemplateFor(typeCode string) (DeskTemplate, bool) {
	for _, tpl := range Palette {
		if tpl.TypeCode == typeCode {
			return tpl, true
		}
	}
	return DeskTemplate{
		TypeCode: typeCode,
		Label:    typeCode,
		Width:    DefaultDeskWidth,
		Height:   DefaultDeskHeight,
		Seats:    OccupiableSeatCount(typeCode),
	}, false
}
