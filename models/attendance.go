package models

// AttendanceStatus adalah status kehadiran petugas ronda pada satu malam jaga.
type AttendanceStatus string

const (
	StatusHadir AttendanceStatus = "Hadir"
	StatusIjin  AttendanceStatus = "Ijin"
	StatusAlpa  AttendanceStatus = "Alpa"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusHadir, StatusIjin, StatusAlpa:
		return true
	}
	return false
}

// OfficerAttendance hanya hidup di dalam satu AttendanceRecord; petugas tidak
// punya identitas lintas-record.
type OfficerAttendance struct {
	Name   string           `json:"name"`
	Status AttendanceStatus `json:"status"`
}

type AttendanceRecord struct {
	ID         string              `json:"id"`
	Date       string              `json:"date"`
	Day        string              `json:"day"`
	Officers   []OfficerAttendance `json:"officers"`
	Notes      string              `json:"notes"`
	Collection int                 `json:"collection"`
}

type AttendanceSubmitPayload struct {
	// Date kosong berarti tanggal hari ini.
	Date       string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Statuses   map[string]string `json:"statuses" validate:"omitempty,dive,oneof=Hadir Ijin Alpa"`
	Notes      string            `json:"notes"`
	Collection string            `json:"collection"`
}
