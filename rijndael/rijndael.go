// Package rijndael реализует AES (Rijndael с блоком 128 бит) с ключами
// 128, 192 и 256 бит по FIPS-197.
package rijndael

import (
	"fmt"

	"symcipher/ecb"
)

// BlockSize - размер блока AES в байтах
const BlockSize = 16

// block - одноблочный шифр с неизменяемым расписанием ключа
type block struct {
	nr int
	w  []uint32
}

func (b *block) BlockSize() int { return BlockSize }

// EncryptBlock шифрует один 16-байтный блок src в dst
func (b *block) EncryptBlock(dst, src []byte) {
	checkBlock(dst, src)

	s := bytesToState(src)
	s.addRoundKey(b.w, 0)

	for round := 1; round < b.nr; round++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(b.w, round)
	}

	s.subBytes()
	s.shiftRows()
	s.addRoundKey(b.w, b.nr)

	s.toBytes(dst)
}

// DecryptBlock расшифровывает один 16-байтный блок src в dst
func (b *block) DecryptBlock(dst, src []byte) {
	checkBlock(dst, src)

	s := bytesToState(src)
	s.addRoundKey(b.w, b.nr)

	for round := b.nr - 1; round > 0; round-- {
		s.invShiftRows()
		s.invSubBytes()
		s.addRoundKey(b.w, round)
		s.invMixColumns()
	}

	s.invShiftRows()
	s.invSubBytes()
	s.addRoundKey(b.w, 0)

	s.toBytes(dst)
}

func checkBlock(dst, src []byte) {
	if len(src) < BlockSize {
		panic(fmt.Sprintf("rijndael: входной блок %d байт, нужно %d", len(src), BlockSize))
	}
	if len(dst) < BlockSize {
		panic(fmt.Sprintf("rijndael: выходной блок %d байт, нужно %d", len(dst), BlockSize))
	}
}

// Cipher - AES с набивкой PKCS7 и поблочной обработкой без сцепления.
// После создания не изменяется и может использоваться из нескольких горутин.
type Cipher struct {
	*block
	mode *ecb.Mode
}

// NewCipher создает шифр; длина ключа 16, 24 или 32 байта
func NewCipher(key []byte) (*Cipher, error) {
	w, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}

	b := &block{nr: len(key)/4 + 6, w: w}
	return &Cipher{block: b, mode: ecb.New(b)}, nil
}

// Encrypt шифрует сообщение произвольной длины
func (c *Cipher) Encrypt(plaintext []byte) []byte {
	return c.mode.Encrypt(plaintext)
}

// Decrypt расшифровывает сообщение и снимает набивку
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	return c.mode.Decrypt(ciphertext)
}
