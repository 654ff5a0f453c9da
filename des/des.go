// Package des реализует DES с выбираемой раундовой функцией сети Фейстеля.
package des

import (
	"encoding/binary"
	"fmt"

	"symcipher/ecb"
)

// BlockSize - размер блока DES в байтах
const BlockSize = 8

// network - 16 раундов Фейстеля с фиксированными подключами и функцией F
type network struct {
	subkeys [Rounds]uint64
	f       RoundFunction
}

func (n *network) BlockSize() int { return BlockSize }

// EncryptBlock шифрует один 8-байтный блок src в dst
func (n *network) EncryptBlock(dst, src []byte) {
	n.crypt(dst, src, false)
}

// DecryptBlock расшифровывает блок: те же раунды с подключами в обратном порядке
func (n *network) DecryptBlock(dst, src []byte) {
	n.crypt(dst, src, true)
}

func (n *network) crypt(dst, src []byte, decrypt bool) {
	if len(src) < BlockSize {
		panic(fmt.Sprintf("des: входной блок %d байт, нужно %d", len(src), BlockSize))
	}
	if len(dst) < BlockSize {
		panic(fmt.Sprintf("des: выходной блок %d байт, нужно %d", len(dst), BlockSize))
	}

	b := permute(binary.BigEndian.Uint64(src), 64, initialPermutation[:])
	left, right := uint32(b>>32), uint32(b)

	for round := 0; round < Rounds; round++ {
		k := n.subkeys[round]
		if decrypt {
			k = n.subkeys[Rounds-1-round]
		}
		left, right = right, left^n.f.Apply(right, k)
	}

	// после последнего раунда половины меняются местами
	preOutput := uint64(right)<<32 | uint64(left)
	binary.BigEndian.PutUint64(dst, permute(preOutput, 64, finalPermutation[:]))
}

// Cipher - DES с набивкой PKCS7 и поблочной обработкой без сцепления.
// Подключи и стратегия фиксируются при создании.
type Cipher struct {
	*network
	method Method
	mode   *ecb.Mode
}

// NewCipher создает шифр с 8-байтным ключом и заданной стратегией F
func NewCipher(key []byte, method Method) (*Cipher, error) {
	f, err := method.roundFunction()
	if err != nil {
		return nil, err
	}

	subkeys, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}

	n := &network{subkeys: subkeys, f: f}
	return &Cipher{network: n, method: method, mode: ecb.New(n)}, nil
}

// NewCipherFromName принимает стратегию по имени: "standard", "xor_based", "and_based"
func NewCipherFromName(key []byte, method string) (*Cipher, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}
	return NewCipher(key, m)
}

// Method возвращает выбранную стратегию
func (c *Cipher) Method() Method {
	return c.method
}

// Encrypt шифрует сообщение произвольной длины
func (c *Cipher) Encrypt(plaintext []byte) []byte {
	return c.mode.Encrypt(plaintext)
}

// Decrypt расшифровывает сообщение и снимает набивку
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	return c.mode.Decrypt(ciphertext)
}
