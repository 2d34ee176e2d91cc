package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dayNames = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// DayName mengembalikan nama hari Indonesia untuk indeks 0=Minggu .. 6=Sabtu.
func DayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return dayNames[weekday]
}

// NightLabel membuat label malam jaga, misal indeks 1 menjadi
// "Senin malam Selasa". Label dihitung sekali saat record dibuat dan tidak
// pernah dihitung ulang.
func NightLabel(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return dayNames[weekday] + " malam " + dayNames[(weekday+1)%7]
}

// ParseCollection membaca nominal uang prelek dari input bebas: semua
// karakter non-digit dibuang, sisa digit dibaca sebagai bilangan. Input
// kosong atau tanpa digit berarti 0; hasil tidak pernah negatif karena
// tanda minus ikut terbuang.
func ParseCollection(input string) int {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	amount, err := strconv.Atoi(digits.String())
	if err != nil {
		// Deretan digit yang terlalu panjang untuk int.
		return 0
	}
	return amount
}

// RecordID membuat id record dari stempel waktu pembuatan (milidetik Unix).
func RecordID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// GenerateBase64Key membuat kunci acak untuk PASETO_SECRET, dikodekan
// Base64 URL.
func GenerateBase64Key(size int) (string, error) {
	if size != 32 {
		return "", fmt.Errorf("PASETO v2 local memerlukan kunci 32 byte")
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("gagal membuat kunci acak: %w", err)
	}

	return base64.URLEncoding.EncodeToString(key), nil
}
