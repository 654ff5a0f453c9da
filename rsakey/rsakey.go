// Package rsakey - учебный RSA для передачи симметричного ключа
// (без набивки, поблочно).
package rsakey

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// DefaultExponent - стандартная открытая экспонента
const DefaultExponent = 65537

var one = big.NewInt(1)

var (
	ErrModulusTooSmall = errors.New("rsakey: модуль меньше 256, блок пуст")
	ErrNotInvertible   = errors.New("rsakey: e не взаимно просто с φ(n)")
	ErrBadCiphertext   = errors.New("rsakey: длина шифртекста не кратна размеру блока")
)

// PublicKey - открытый ключ (n, e)
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey - закрытый ключ
type PrivateKey struct {
	PublicKey
	D *big.Int
	P *big.Int
	Q *big.Int
}

// NewKey строит ключ из заданных простых p, q и экспоненты e
func NewKey(p, q, e *big.Int) (*PrivateKey, error) {
	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 || p.Cmp(q) == 0 {
		return nil, fmt.Errorf("rsakey: некорректные p=%s, q=%s", p, q)
	}

	n := new(big.Int).Mul(p, q)
	if n.Cmp(big.NewInt(256)) < 0 {
		return nil, ErrModulusTooSmall
	}

	// φ(n) = (p-1)(q-1)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, one),
		new(big.Int).Sub(q, one),
	)

	gcd, d, _ := extendedGCD(e, phi)
	if gcd.Cmp(one) != 0 {
		return nil, ErrNotInvertible
	}
	if d.Sign() < 0 {
		d.Add(d, phi)
	}

	return &PrivateKey{
		PublicKey: PublicKey{N: n, E: new(big.Int).Set(e)},
		D:         d,
		P:         new(big.Int).Set(p),
		Q:         new(big.Int).Set(q),
	}, nil
}

// GenerateKey создает ключ с модулем около bits бит. Пары с близкими p, q
// и с малым d (d <= n^(1/4), атака Винера) отбрасываются.
func GenerateKey(random io.Reader, bits int) (*PrivateKey, error) {
	if bits < 64 {
		return nil, fmt.Errorf("rsakey: размер модуля должен быть не менее 64 бит, получено %d", bits)
	}
	e := big.NewInt(DefaultExponent)

	for {
		p, err := rand.Prime(random, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := rand.Prime(random, bits-bits/2)
		if err != nil {
			return nil, err
		}

		// защита от факторизации Ферма
		diff := new(big.Int).Sub(p, q)
		minDiff := new(big.Int).Lsh(one, uint(bits/4))
		if diff.Abs(diff).Cmp(minDiff) < 0 {
			continue
		}

		key, err := NewKey(p, q, e)
		if errors.Is(err, ErrNotInvertible) {
			continue
		}
		if err != nil {
			return nil, err
		}

		nSqrtSqrt := new(big.Int).Sqrt(new(big.Int).Sqrt(key.N))
		if key.D.Cmp(nSqrtSqrt) <= 0 {
			continue
		}
		return key, nil
	}
}

// extendedGCD решает уравнение Безу: ax + by = gcd(a,b)
func extendedGCD(a, b *big.Int) (*big.Int, *big.Int, *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		quotient := new(big.Int).Div(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(quotient, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(quotient, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(quotient, t))
	}

	return oldR, oldS, oldT
}

// modulusLen - длина блока шифртекста в байтах
func (pub *PublicKey) modulusLen() int {
	return (pub.N.BitLen() + 7) / 8
}

// Encrypt шифрует data блоками по k-1 байт, где k - длина модуля.
// Неполный блок идет первым, поэтому после расшифрования данные
// выровнены по правому краю.
func (pub *PublicKey) Encrypt(data []byte) []byte {
	k := pub.modulusLen()
	chunk := k - 1

	var out []byte
	first := len(data) % chunk
	if first == 0 && len(data) > 0 {
		first = chunk
	}
	for start, end := 0, first; start < len(data); start, end = end, end+chunk {
		m := new(big.Int).SetBytes(data[start:end])
		c := new(big.Int).Exp(m, pub.E, pub.N)
		out = append(out, c.FillBytes(make([]byte, k))...)
	}
	return out
}

// Decrypt возвращает по k-1 байт на каждый блок шифртекста
func (priv *PrivateKey) Decrypt(ciphertext []byte) ([]byte, error) {
	k := priv.modulusLen()
	if len(ciphertext)%k != 0 {
		return nil, ErrBadCiphertext
	}

	out := make([]byte, 0, len(ciphertext)/k*(k-1))
	for start := 0; start < len(ciphertext); start += k {
		c := new(big.Int).SetBytes(ciphertext[start : start+k])
		if c.Cmp(priv.N) >= 0 {
			return nil, ErrBadCiphertext
		}
		m := new(big.Int).Exp(c, priv.D, priv.N)
		// блок не мог получиться из k-1 байт открытого текста
		if m.BitLen() > 8*(k-1) {
			return nil, ErrBadCiphertext
		}
		out = append(out, m.FillBytes(make([]byte, k-1))...)
	}
	return out, nil
}
