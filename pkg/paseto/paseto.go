package paseto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Maker membuat dan memverifikasi token PASETO v2.local.
type Maker struct {
	paseto       *paseto.V2
	symmetricKey []byte
}

// NewMaker menerima kunci dalam Base64 (URL atau standar) yang setelah
// di-decode harus tepat 32 byte.
func NewMaker(secretBase64 string) (*Maker, error) {
	decodedKey, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		decodedKey, err = base64.StdEncoding.DecodeString(secretBase64)
		if err != nil {
			return nil, fmt.Errorf("PASETO_SECRET bukan Base64 yang valid: %w", err)
		}
	}

	if len(decodedKey) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET harus tepat 32 byte setelah decode, dapat %d byte", len(decodedKey))
	}

	return &Maker{paseto: paseto.NewV2(), symmetricKey: decodedKey}, nil
}

func (m *Maker) GenerateToken(username, role string) (string, error) {
	now := time.Now()

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: now.Add(24 * time.Hour),
		NotBefore:  now,
	}
	token.Set("username", username)
	token.Set("role", role)

	return m.paseto.Encrypt(m.symmetricKey, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*Claims, error) {
	var token paseto.JSONToken
	var footer string

	if err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &footer); err != nil {
		return nil, fmt.Errorf("gagal mendekripsi token paseto: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("validasi token gagal: %w", err)
	}

	return &Claims{
		Username: token.Get("username"),
		Role:     token.Get("role"),
	}, nil
}
