package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"Sistem-Absensi-Ronda/models"
	"Sistem-Absensi-Ronda/storage"
)

// ScheduleRepository memegang jadwal piket mingguan dan menyinkronkannya ke
// dokumen schedule.json. Nama petugas di satu hari unik (dijaga AddOfficer);
// nama yang sama di hari berbeda adalah string yang tidak saling kenal.
type ScheduleRepository interface {
	Load(ctx context.Context) error
	Schedule() models.DutySchedule
	Lookup(weekday int) []string
	AddOfficer(ctx context.Context, weekday int, name string) (bool, error)
	RemoveOfficer(ctx context.Context, weekday int, name string) (bool, error)
	ReplaceAll(ctx context.Context, schedule models.DutySchedule) error
}

type scheduleRepository struct {
	mu       sync.Mutex
	store    storage.DocumentStore
	path     string
	sha      string
	schedule models.DutySchedule
}

func NewScheduleRepository(store storage.DocumentStore, path string) ScheduleRepository {
	return &scheduleRepository{store: store, path: path}
}

// Load membaca jadwal dari penyimpanan. Dokumen yang belum ada atau kosong
// berarti jadwal bawaan, dan dokumen yang belum ada langsung diinisialisasi.
func (r *scheduleRepository) Load(ctx context.Context) error {
	doc, err := r.store.Load(ctx, r.path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.schedule = models.DefaultDutySchedule()
			r.sha = ""
			return r.persistLocked(ctx)
		}
		return fmt.Errorf("gagal memuat jadwal ronda: %w", err)
	}

	schedule := models.DefaultDutySchedule()
	if len(bytes.TrimSpace(doc.Content)) > 0 {
		if err := json.Unmarshal(doc.Content, &schedule); err != nil {
			return &storage.FormatError{Path: r.path, Err: err}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedule = schedule
	r.sha = doc.SHA
	return nil
}

func (r *scheduleRepository) persistLocked(ctx context.Context) error {
	content, err := json.MarshalIndent(r.schedule, "", "  ")
	if err != nil {
		return fmt.Errorf("gagal mengkodekan jadwal ronda: %w", err)
	}

	newSHA, err := r.store.Save(ctx, r.path, content, r.sha)
	if err != nil {
		var conflict *storage.ConflictError
		if errors.As(err, &conflict) {
			if doc, loadErr := r.store.Load(ctx, r.path); loadErr == nil {
				var current models.DutySchedule
				if decodeErr := json.Unmarshal(doc.Content, &current); decodeErr == nil {
					r.schedule = current
					r.sha = doc.SHA
				}
			}
		}
		return err
	}

	r.sha = newSHA
	return nil
}

func (r *scheduleRepository) Schedule() models.DutySchedule {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out models.DutySchedule
	for i, names := range r.schedule {
		out[i] = append([]string{}, names...)
	}
	return out
}

// Lookup mengembalikan daftar petugas hari itu, kosong bila belum diisi.
func (r *scheduleRepository) Lookup(weekday int) []string {
	if weekday < 0 || weekday > 6 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.schedule[weekday]...)
}

// AddOfficer menambahkan nama ke daftar satu hari. Nama kosong atau yang
// sudah terdaftar di hari itu (perbandingan setelah trim) tidak mengubah
// apa-apa dan mengembalikan false.
func (r *scheduleRepository) AddOfficer(ctx context.Context, weekday int, name string) (bool, error) {
	if weekday < 0 || weekday > 6 {
		return false, fmt.Errorf("indeks hari tidak valid: %d", weekday)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.schedule[weekday] {
		if strings.TrimSpace(existing) == name {
			return false, nil
		}
	}

	prev := r.schedule[weekday]
	r.schedule[weekday] = append(append([]string{}, prev...), name)

	if err := r.persistLocked(ctx); err != nil {
		var conflict *storage.ConflictError
		if !errors.As(err, &conflict) {
			r.schedule[weekday] = prev
		}
		return false, err
	}
	return true, nil
}

// RemoveOfficer menghapus kemunculan pertama (dan satu-satunya) nama itu
// pada hari tersebut, dengan kecocokan nama persis.
func (r *scheduleRepository) RemoveOfficer(ctx context.Context, weekday int, name string) (bool, error) {
	if weekday < 0 || weekday > 6 {
		return false, fmt.Errorf("indeks hari tidak valid: %d", weekday)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.schedule[weekday]
	for i, existing := range prev {
		if existing == name {
			next := append([]string{}, prev[:i]...)
			next = append(next, prev[i+1:]...)
			r.schedule[weekday] = next

			if err := r.persistLocked(ctx); err != nil {
				var conflict *storage.ConflictError
				if !errors.As(err, &conflict) {
					r.schedule[weekday] = prev
				}
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ReplaceAll mengganti seluruh jadwal, dipakai editor jadwal.
func (r *scheduleRepository) ReplaceAll(ctx context.Context, schedule models.DutySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.schedule
	r.schedule = schedule

	if err := r.persistLocked(ctx); err != nil {
		var conflict *storage.ConflictError
		if !errors.As(err, &conflict) {
			r.schedule = prev
		}
		return err
	}
	return nil
}
