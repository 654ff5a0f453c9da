// Package engine выбирает шифр по имени и приводит AES и DES к общему интерфейсу.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"symcipher/des"
	"symcipher/ecb"
	"symcipher/padding"
	"symcipher/rijndael"
)

// Cipher - шифр сообщений произвольной длины с набивкой PKCS7
type Cipher interface {
	Encrypt(plaintext []byte) []byte
	Decrypt(ciphertext []byte) ([]byte, error)
	BlockSize() int
	Name() string
}

// UnknownCipherError - имя шифра не зарегистрировано
type UnknownCipherError string

func (e UnknownCipherError) Error() string {
	return "engine: неизвестный шифр " + strconv.Quote(string(e))
}

// ErrMethodNotApplicable - стратегия Фейстеля задана для AES
var ErrMethodNotApplicable = errors.New("engine: стратегия раундовой функции применима только к DES")

type factory func(key []byte, method string) (Cipher, error)

var registry = map[string]factory{
	"aes": newAES,
	"des": newDES,
}

// Names возвращает список поддерживаемых шифров
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New создает шифр. Для DES пустой method означает "standard".
func New(name string, key []byte, method string) (Cipher, error) {
	f, ok := registry[name]
	if !ok {
		return nil, UnknownCipherError(name)
	}
	return f(key, method)
}

type aesCipher struct {
	*rijndael.Cipher
	keyBits int
}

func (c aesCipher) Name() string {
	return "aes-" + strconv.Itoa(c.keyBits)
}

func newAES(key []byte, method string) (Cipher, error) {
	if method != "" {
		return nil, ErrMethodNotApplicable
	}
	c, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return aesCipher{Cipher: c, keyBits: len(key) * 8}, nil
}

type desCipher struct {
	*des.Cipher
}

func (c desCipher) Name() string {
	return fmt.Sprintf("des-%s", c.Method())
}

func newDES(key []byte, method string) (Cipher, error) {
	if method == "" {
		method = des.Standard.String()
	}
	c, err := des.NewCipherFromName(key, method)
	if err != nil {
		return nil, err
	}
	return desCipher{Cipher: c}, nil
}

// IsInputError сообщает, вызвана ли ошибка некорректными входными данными
// (ключ, стратегия, длина шифртекста, набивка), а не сбоем
func IsInputError(err error) bool {
	var (
		aesKey rijndael.KeyLengthError
		desKey des.KeyLengthError
		mode   des.UnsupportedModeError
		align  *ecb.BlockAlignmentError
	)
	return errors.As(err, &aesKey) ||
		errors.As(err, &desKey) ||
		errors.As(err, &mode) ||
		errors.As(err, &align) ||
		errors.Is(err, padding.ErrInvalidPadding) ||
		errors.Is(err, ErrMethodNotApplicable)
}
