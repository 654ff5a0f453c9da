// Package keymaterial превращает общий секрет или введенную строку в ключ
// фиксированной длины.
package keymaterial

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

var (
	ErrNegativeSecret = errors.New("keymaterial: отрицательный секрет")
	ErrEmptyKey       = errors.New("keymaterial: пустой ключ")
)

// SizeError - запрошена неположительная длина ключа
type SizeError int

func (e SizeError) Error() string {
	return fmt.Sprintf("keymaterial: неверная длина ключа %d", int(e))
}

// FixedBytes записывает секрет в size байт big-endian.
// Длинный секрет усекается до младших байт, короткий дополняется нулями слева.
func FixedBytes(secret *big.Int, size int) ([]byte, error) {
	if size <= 0 {
		return nil, SizeError(size)
	}
	if secret.Sign() < 0 {
		return nil, ErrNegativeSecret
	}

	secretBytes := secret.Bytes()
	result := make([]byte, size)

	if len(secretBytes) < size {
		copy(result[size-len(secretBytes):], secretBytes)
	} else {
		copy(result, secretBytes[len(secretBytes)-size:])
	}
	return result, nil
}

// Derive получает size байт ключа из секрета через SHAKE256
func Derive(secret []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, SizeError(size)
	}
	out := make([]byte, size)
	sha3.ShakeSum256(out, secret)
	return out, nil
}

// Fingerprint - короткий отпечаток ключа для логов
func Fingerprint(key []byte) string {
	sum := sha3.Sum256(key)
	return hex.EncodeToString(sum[:4])
}

// Parse декодирует ключ из hex; пробелы и префикс 0x игнорируются
func Parse(hexKey string) ([]byte, error) {
	s := strings.Join(strings.Fields(hexKey), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, ErrEmptyKey
	}

	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("keymaterial: ключ не в hex: %w", err)
	}
	return key, nil
}
