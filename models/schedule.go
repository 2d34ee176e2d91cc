package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DutySchedule memetakan indeks hari (0=Minggu .. 6=Sabtu) ke daftar nama
// petugas yang jaga malam itu. Di dokumen JSON bentuknya objek berkunci
// "0".."6" supaya kompatibel dengan format file schedule.json.
type DutySchedule [7][]string

func (s DutySchedule) MarshalJSON() ([]byte, error) {
	m := make(map[string][]string, len(s))
	for i, names := range s {
		if names == nil {
			names = []string{}
		}
		m[strconv.Itoa(i)] = names
	}
	return json.Marshal(m)
}

func (s *DutySchedule) UnmarshalJSON(data []byte) error {
	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var out DutySchedule
	for key, names := range m {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx > 6 {
			return fmt.Errorf("indeks hari tidak valid: %q", key)
		}
		out[idx] = names
	}
	*s = out
	return nil
}

// DefaultDutySchedule adalah jadwal bawaan yang dipakai saat dokumen jadwal
// belum pernah dibuat di penyimpanan.
func DefaultDutySchedule() DutySchedule {
	return DutySchedule{
		{"Pak Ahmad", "Pak Gunawan"},           // Minggu
		{"Pak Budi", "Pak Hasan"},              // Senin
		{"Pak Candra", "Pak Irfan"},            // Selasa
		{"Pak Dedi", "Pak Joko"},               // Rabu
		{"Pak Eko", "Pak Karta"},               // Kamis
		{"Pak Fajar", "Pak Lukman"},            // Jumat
		{"Pak Gilang", "Pak Maman", "Pak Nur"}, // Sabtu
	}
}

type ScheduleOfficerPayload struct {
	Weekday int    `json:"weekday" validate:"min=0,max=6"`
	Name    string `json:"name" validate:"required"`
}

type ScheduleReplacePayload struct {
	Schedule DutySchedule `json:"schedule"`
}
