package dto

// SaveClassroomRequest saves the current workspace under a name.
type SaveClassroomRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ClassroomSummary lists a saved classroom without its desks.
type ClassroomSummary struct {
	Name           string `json:"name"`
	Desks          int    `json:"desks"`
	HasArrangement bool   `json:"hasArrangement"`
	Students       int    `json:"students"`
}

// SaveClassroomResponse reports whether an existing record was overwritten.
type SaveClassroomResponse struct {
	Name     string `json:"name"`
	Replaced bool   `json:"replaced"`
}

// ImportClassroomsResponse reports how many classrooms the import stored.
type ImportClassroomsResponse struct {
	Imported int `json:"imported"`
}
