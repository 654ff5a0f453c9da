// Package ecb применяет блочный шифр к сообщению произвольной длины:
// набивка PKCS7 и независимая обработка каждого блока, без IV и сцепления.
package ecb

import (
	"fmt"

	"symcipher/padding"
)

// Block - преобразование одного блока фиксированного размера
type Block interface {
	BlockSize() int
	EncryptBlock(dst, src []byte)
	DecryptBlock(dst, src []byte)
}

// BlockAlignmentError - длина шифртекста не кратна размеру блока
type BlockAlignmentError struct {
	Length    int
	BlockSize int
}

func (e *BlockAlignmentError) Error() string {
	return fmt.Sprintf("длина шифртекста %d не кратна размеру блока %d", e.Length, e.BlockSize)
}

// Mode - многоблочный драйвер. Не хранит изменяемого состояния,
// поэтому безопасен для одновременного использования.
type Mode struct {
	block   Block
	padding padding.Padding
}

// New создает драйвер с набивкой PKCS7
func New(b Block) *Mode {
	return &Mode{block: b, padding: padding.PKCS7{}}
}

// Encrypt дополняет сообщение и шифрует каждый блок независимо
func (m *Mode) Encrypt(plaintext []byte) []byte {
	bs := m.block.BlockSize()
	padded := m.padding.Pad(plaintext, bs)

	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		m.block.EncryptBlock(out[i:i+bs], padded[i:i+bs])
	}
	return out
}

// Decrypt расшифровывает каждый блок и снимает набивку
func (m *Mode) Decrypt(ciphertext []byte) ([]byte, error) {
	bs := m.block.BlockSize()
	if len(ciphertext)%bs != 0 {
		return nil, &BlockAlignmentError{Length: len(ciphertext), BlockSize: bs}
	}

	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += bs {
		m.block.DecryptBlock(out[i:i+bs], ciphertext[i:i+bs])
	}

	plaintext, err := m.padding.Unpad(out)
	if err != nil {
		return nil, fmt.Errorf("ошибка снятия набивки: %w", err)
	}
	return plaintext, nil
}
