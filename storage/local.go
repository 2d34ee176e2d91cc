package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore menyimpan dokumen sebagai file JSON biasa di satu direktori.
// Token versinya SHA-1 gaya blob git, sehingga backend lokal dan GitHub
// memakai token yang sama untuk isi yang sama.
type LocalStore struct {
	mu  sync.Mutex
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// BlobSHA menghitung SHA-1 blob git ("blob <len>\x00" + isi) dari konten.
func BlobSHA(content []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d", len(content))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func (s *LocalStore) filePath(path string) string {
	return filepath.Join(s.dir, filepath.Clean(path))
}

func (s *LocalStore) Load(_ context.Context, path string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.filePath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gagal membaca dokumen %s: %w", path, err)
	}

	return &Document{Content: content, SHA: BlobSHA(content)}, nil
}

func (s *LocalStore) Save(_ context.Context, path string, content []byte, sha string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.filePath(path)

	current, err := os.ReadFile(target)
	switch {
	case err == nil:
		if sha != BlobSHA(current) {
			return "", &ConflictError{Path: path}
		}
	case os.IsNotExist(err):
		if sha != "" {
			return "", &ConflictError{Path: path}
		}
	default:
		return "", fmt.Errorf("gagal membaca dokumen %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("gagal menyiapkan direktori data: %w", err)
	}

	// Tulis ke file sementara dulu lalu rename supaya dokumen tidak pernah
	// terbaca setengah jadi.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".ronda-*")
	if err != nil {
		return "", fmt.Errorf("gagal membuat file sementara: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("gagal menulis dokumen %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("gagal menutup file sementara: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("gagal menyimpan dokumen %s: %w", path, err)
	}

	return BlobSHA(content), nil
}

// Delete menghapus dokumen lokal. Dipakai antara lain saat kredensial remote
// dicabut dan file settings harus dibuang.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("gagal menghapus dokumen %s: %w", path, err)
	}
	return nil
}
