package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"Sistem-Absensi-Ronda/models"
)

const defaultAPIBase = "https://api.github.com"

// GitHubStore menyimpan dokumen sebagai file JSON di sebuah repo GitHub
// lewat contents API. Setiap baca/tulis adalah satu dokumen utuh; token
// versinya SHA blob yang dilaporkan GitHub.
type GitHubStore struct {
	mu      sync.Mutex // melindungi creds
	writeMu sync.Mutex // menserialkan Save
	apiBase string
	creds   models.RemoteSettings

	// OnAuthFailure dipanggil sekali setiap kredensial ditolak (401/403),
	// setelah kredensial di memori dibuang. Pemiliknya biasanya menghapus
	// settings.json lokal supaya user diminta mengisi ulang.
	OnAuthFailure func()
}

func NewGitHubStore(creds models.RemoteSettings) *GitHubStore {
	return &GitHubStore{apiBase: defaultAPIBase, creds: creds}
}

// NewGitHubStoreWithBase dipakai di test untuk mengarahkan store ke server
// contents API tiruan.
func NewGitHubStoreWithBase(creds models.RemoteSettings, apiBase string) *GitHubStore {
	return &GitHubStore{apiBase: strings.TrimRight(apiBase, "/"), creds: creds}
}

func (s *GitHubStore) SetCredentials(creds models.RemoteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
}

func (s *GitHubStore) Credentials() models.RemoteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

func (s *GitHubStore) contentURL(path string) (string, error) {
	creds := s.Credentials()
	if !creds.Complete() {
		return "", &TransportError{Detail: "kredensial penyimpanan remote belum diisi"}
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.apiBase, creds.Owner, creds.Repo, path), nil
}

func (s *GitHubStore) authorize(agent *fiber.Agent) *fiber.Agent {
	agent.Set(fiber.HeaderAuthorization, "Bearer "+s.Credentials().Token)
	agent.Set(fiber.HeaderAccept, "application/vnd.github+json")
	agent.Set(fiber.HeaderUserAgent, "sistem-absensi-ronda")
	return agent
}

// handleAuthFailure membuang kredensial yang ditolak. Kredensial yang sudah
// dicabut hanya ketahuan reaktif, dari fetch yang gagal.
func (s *GitHubStore) handleAuthFailure() {
	s.mu.Lock()
	s.creds = models.RemoteSettings{}
	s.mu.Unlock()

	log.Println("Kredensial penyimpanan remote ditolak, kredensial tersimpan dihapus")
	if s.OnAuthFailure != nil {
		s.OnAuthFailure()
	}
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

func (s *GitHubStore) Load(_ context.Context, path string) (*Document, error) {
	url, err := s.contentURL(path)
	if err != nil {
		return nil, err
	}

	code, body, errs := s.authorize(fiber.Get(url)).Bytes()
	if len(errs) > 0 {
		return nil, &TransportError{Detail: errs[0].Error()}
	}

	switch {
	case code == fiber.StatusNotFound:
		return nil, ErrNotFound
	case code == fiber.StatusUnauthorized || code == fiber.StatusForbidden:
		s.handleAuthFailure()
		return nil, &TransportError{StatusCode: code, Detail: "kredensial ditolak oleh penyimpanan remote"}
	case code < 200 || code >= 300:
		return nil, &TransportError{StatusCode: code, Detail: string(body)}
	}

	var resp contentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	// GitHub menyisipkan newline di tengah-tengah konten base64.
	raw := strings.ReplaceAll(resp.Content, "\n", "")
	content, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	return &Document{Content: content, SHA: resp.SHA}, nil
}

func (s *GitHubStore) Save(_ context.Context, path string, content []byte, sha string) (string, error) {
	url, err := s.contentURL(path)
	if err != nil {
		return "", err
	}

	payload := fiber.Map{
		"message": "update " + path,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		payload["sha"] = sha
	}

	// Satu penulisan per path pada satu waktu; contents API tidak punya
	// transaksi, jadi serialisasi dilakukan di sisi kita.
	s.writeMu.Lock()
	code, body, errs := s.authorize(fiber.Put(url)).JSON(payload).Bytes()
	s.writeMu.Unlock()

	if len(errs) > 0 {
		return "", &TransportError{Detail: errs[0].Error()}
	}

	switch {
	case code == fiber.StatusConflict || code == fiber.StatusUnprocessableEntity:
		return "", &ConflictError{Path: path}
	case code == fiber.StatusUnauthorized || code == fiber.StatusForbidden:
		s.handleAuthFailure()
		return "", &TransportError{StatusCode: code, Detail: "kredensial ditolak oleh penyimpanan remote"}
	case code < 200 || code >= 300:
		return "", &TransportError{StatusCode: code, Detail: string(body)}
	}

	var resp struct {
		Content contentResponse `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &FormatError{Path: path, Err: err}
	}

	return resp.Content.SHA, nil
}
