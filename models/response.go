package models

type LoginSuccessResponse struct {
	Message string `json:"message" example:"Login berhasil"`
	Token   string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	Role    string `json:"role" example:"admin"`
}

type SubmitSuccessResponse struct {
	Message string           `json:"message" example:"Absensi ronda berhasil dicatat"`
	Record  AttendanceRecord `json:"record"`
}

type RecapResponse struct {
	Message string             `json:"message" example:"Rekap absensi berhasil diambil"`
	Records []AttendanceRecord `json:"records"`
	Total   int                `json:"total" example:"12"`
}

type ImportSuccessResponse struct {
	Message string `json:"message" example:"Data absensi berhasil diimpor"`
	Total   int    `json:"total" example:"30"`
}

type ScheduleResponse struct {
	Message  string       `json:"message" example:"Jadwal ronda berhasil diambil"`
	Schedule DutySchedule `json:"schedule"`
}

type UpcomingNight struct {
	Date     string   `json:"date" example:"2024-01-08"`
	Day      string   `json:"day" example:"Senin malam Selasa"`
	Officers []string `json:"officers"`
}

type UpcomingNightsResponse struct {
	Message string          `json:"message" example:"Jadwal ronda berikutnya berhasil dihitung"`
	Nights  []UpcomingNight `json:"nights"`
}

type QRCodeResponse struct {
	Message     string `json:"message" example:"QR Code berhasil dibuat"`
	QRCodeImage string `json:"qr_code_image" example:"data:image/png;base64,iVBOR..."`
	FormURL     string `json:"form_url" example:"http://localhost:3000/absen?tanggal=2024-01-01"`
}

type RemoteSettingsResponse struct {
	Message string `json:"message" example:"Kredensial penyimpanan remote tersimpan"`
	Owner   string `json:"owner" example:"warga-rt05"`
	Repo    string `json:"repo" example:"data-ronda"`
	Token   string `json:"token" example:"ghp_****"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Payload tidak valid"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Token tidak valid atau tidak ada"`
}

type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Akses ditolak. Hak akses admin diperlukan"`
}
