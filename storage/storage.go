package storage

import (
	"context"
	"errors"
	"fmt"
)

// Path relatif dokumen di penyimpanan. Satu dokumen = satu blob JSON utuh.
const (
	RecordsPath  = "data.json"
	SchedulePath = "schedule.json"
	SettingsPath = "settings.json"
)

// Document adalah isi satu dokumen beserta token versinya (SHA blob).
// Token dipakai untuk optimistic concurrency saat menulis kembali.
type Document struct {
	Content []byte
	SHA     string
}

// DocumentStore adalah port penyimpanan dokumen. Load terhadap path yang
// belum ada mengembalikan ErrNotFound; itu kondisi valid yang berarti
// dokumen perlu diinisialisasi, bukan kegagalan.
type DocumentStore interface {
	// Load membaca dokumen utuh beserta token versinya.
	Load(ctx context.Context, path string) (*Document, error)

	// Save menulis isi dokumen utuh. sha adalah token versi terakhir yang
	// diketahui pemanggil (kosong saat membuat dokumen baru). Penulisan
	// dengan token basi ditolak dengan ConflictError; tidak ada retry di
	// dalam store, pemulihan adalah urusan pemanggil (buang state lokal,
	// Load ulang).
	Save(ctx context.Context, path string, content []byte, sha string) (string, error)
}

// ErrNotFound menandai dokumen yang belum pernah dibuat.
var ErrNotFound = errors.New("dokumen tidak ditemukan")

// FormatError menandai isi dokumen yang bukan JSON valid atau bentuknya
// tidak sesuai harapan. Tidak pernah diterapkan sebagian.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format dokumen %s tidak valid: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// TransportError menandai kegagalan komunikasi dengan penyimpanan remote
// (non-2xx selain not-found, atau kegagalan jaringan).
type TransportError struct {
	StatusCode int
	Detail     string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("gagal menghubungi penyimpanan: %s", e.Detail)
	}
	return fmt.Sprintf("penyimpanan menolak permintaan (status %d): %s", e.StatusCode, e.Detail)
}

// ConflictError menandai penulisan yang ditolak karena token versi basi:
// ada penulis lain yang lebih dulu mengubah dokumen yang sama.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("konflik penulisan pada %s: token versi sudah basi", e.Path)
}
