package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"Sistem-Absensi-Ronda/models"
	"Sistem-Absensi-Ronda/storage"
)

// AttendanceRepository memegang seluruh daftar record absensi di memori,
// urut sesuai kedatangan, dan menyinkronkannya ke satu dokumen JSON utuh
// di penyimpanan. Penjaga "satu record per tanggal" ada di handler submit,
// bukan di sini: Append dan impor menerima apa pun yang berbentuk daftar.
type AttendanceRepository interface {
	Load(ctx context.Context) error
	Append(ctx context.Context, record models.AttendanceRecord) error
	ReplaceAll(ctx context.Context, records []models.AttendanceRecord) error
	ImportJSON(ctx context.Context, raw []byte) error
	FindAll(dateFilter string) []models.AttendanceRecord
	HasDate(date string) bool
	ExportJSON() ([]byte, error)
	Count() int
}

type attendanceRepository struct {
	mu      sync.Mutex
	store   storage.DocumentStore
	path    string
	sha     string
	records []models.AttendanceRecord
}

func NewAttendanceRepository(store storage.DocumentStore, path string) AttendanceRepository {
	return &attendanceRepository{store: store, path: path}
}

// Load membaca dokumen record dari penyimpanan dan mengganti isi memori
// seluruhnya. Dokumen yang belum ada diperlakukan sebagai daftar kosong
// yang langsung diinisialisasi ke penyimpanan.
func (r *attendanceRepository) Load(ctx context.Context) error {
	doc, err := r.store.Load(ctx, r.path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.records = nil
			r.sha = ""
			return r.persistLocked(ctx)
		}
		return fmt.Errorf("gagal memuat data absensi: %w", err)
	}

	records, err := decodeRecords(r.path, doc.Content)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = records
	r.sha = doc.SHA
	return nil
}

func decodeRecords(path string, content []byte) ([]models.AttendanceRecord, error) {
	// Dokumen yang ada tapi kosong dianggap daftar kosong, bukan error.
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	var records []models.AttendanceRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, &storage.FormatError{Path: path, Err: err}
	}
	return records, nil
}

// persistLocked menulis seluruh dokumen ke penyimpanan. Saat tertolak
// karena konflik, state optimistik lokal dibuang dan isi memori diganti
// dengan isi penyimpanan terkini; error konflik tetap dikembalikan supaya
// pemanggil tahu aksinya harus diulang.
func (r *attendanceRepository) persistLocked(ctx context.Context) error {
	records := r.records
	if records == nil {
		records = []models.AttendanceRecord{}
	}

	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("gagal mengkodekan data absensi: %w", err)
	}

	newSHA, err := r.store.Save(ctx, r.path, content, r.sha)
	if err != nil {
		var conflict *storage.ConflictError
		if errors.As(err, &conflict) {
			if doc, loadErr := r.store.Load(ctx, r.path); loadErr == nil {
				if current, decodeErr := decodeRecords(r.path, doc.Content); decodeErr == nil {
					r.records = current
					r.sha = doc.SHA
				}
			}
		}
		return err
	}

	r.sha = newSHA
	return nil
}

func (r *attendanceRepository) Append(ctx context.Context, record models.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.records
	r.records = append(append([]models.AttendanceRecord{}, r.records...), record)

	if err := r.persistLocked(ctx); err != nil {
		var conflict *storage.ConflictError
		if !errors.As(err, &conflict) {
			// Konflik sudah mengganti memori dengan isi penyimpanan;
			// kegagalan lain mengembalikan state sebelumnya.
			r.records = prev
		}
		return err
	}
	return nil
}

func (r *attendanceRepository) ReplaceAll(ctx context.Context, records []models.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.records
	r.records = append([]models.AttendanceRecord{}, records...)

	if err := r.persistLocked(ctx); err != nil {
		var conflict *storage.ConflictError
		if !errors.As(err, &conflict) {
			r.records = prev
		}
		return err
	}
	return nil
}

// ImportJSON mengganti seluruh koleksi dengan isi satu dokumen JSON
// (format data_ronda.json: array AttendanceRecord polos). Tidak ada merge,
// tidak ada dedup; validasinya hanya "ini daftar record". Input yang bukan
// daftar gagal dengan FormatError tanpa menyentuh koleksi.
func (r *attendanceRepository) ImportJSON(ctx context.Context, raw []byte) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return &storage.FormatError{Path: r.path, Err: err}
	}

	records := make([]models.AttendanceRecord, 0, len(elements))
	for _, element := range elements {
		var record models.AttendanceRecord
		if err := json.Unmarshal(element, &record); err != nil {
			return &storage.FormatError{Path: r.path, Err: err}
		}
		records = append(records, record)
	}

	return r.ReplaceAll(ctx, records)
}

// FindAll mengembalikan record yang cocok dengan filter tanggal (atau
// semuanya bila filter kosong), urut tanggal menurun. Sortirnya stabil:
// record bertanggal sama mempertahankan urutan kedatangan.
func (r *attendanceRepository) FindAll(dateFilter string) []models.AttendanceRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.AttendanceRecord, 0, len(r.records))
	for _, record := range r.records {
		if dateFilter == "" || record.Date == dateFilter {
			result = append(result, record)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result
}

func (r *attendanceRepository) HasDate(date string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.Date == date {
			return true
		}
	}
	return false
}

func (r *attendanceRepository) ExportJSON() ([]byte, error) {
	r.mu.Lock()
	records := r.records
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	r.mu.Unlock()

	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("gagal mengkodekan data absensi: %w", err)
	}
	return content, nil
}

func (r *attendanceRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
