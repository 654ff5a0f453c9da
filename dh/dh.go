// Package dh - обмен ключами Диффи-Хеллмана, источник общего секрета для
// симметричных шифров.
package dh

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

var (
	ErrInvalidParams    = errors.New("dh: некорректные параметры p, g")
	ErrInvalidPrivate   = errors.New("dh: приватный ключ вне диапазона [1, p-1]")
	ErrInvalidPublicKey = errors.New("dh: некорректный публичный ключ")
)

// Params - открытые параметры группы
type Params struct {
	P *big.Int
	G *big.Int
}

// NewParams проверяет заданные вручную параметры: p > 3, 1 < g < p-1.
// Простота p не проверяется.
func NewParams(p, g *big.Int) (*Params, error) {
	if p == nil || g == nil || p.Cmp(big.NewInt(3)) <= 0 {
		return nil, ErrInvalidParams
	}
	if g.Cmp(one) <= 0 || g.Cmp(new(big.Int).Sub(p, one)) >= 0 {
		return nil, ErrInvalidParams
	}
	return &Params{P: new(big.Int).Set(p), G: new(big.Int).Set(g)}, nil
}

// GenerateParams ищет безопасное простое p = 2q + 1 и генератор
func GenerateParams(random io.Reader, bits int) (*Params, error) {
	if bits < 64 {
		return nil, fmt.Errorf("dh: размер модуля должен быть не менее 64 бит, получено %d", bits)
	}

	for {
		p, err := rand.Prime(random, bits)
		if err != nil {
			return nil, fmt.Errorf("ошибка генерации простого числа: %w", err)
		}

		q := new(big.Int).Rsh(p, 1)
		if !q.ProbablyPrime(20) {
			continue
		}

		g, err := findGenerator(p, q)
		if err != nil {
			return nil, err
		}
		return &Params{P: p, G: g}, nil
	}
}

// findGenerator ищет первообразный корень: для p = 2q + 1 порядок g равен
// 2q, если g^q != 1 и g^2 != 1
func findGenerator(p, q *big.Int) (*big.Int, error) {
	for i := int64(2); i < 100; i++ {
		g := big.NewInt(i)
		if new(big.Int).Exp(g, q, p).Cmp(one) != 0 && new(big.Int).Exp(g, two, p).Cmp(one) != 0 {
			return g, nil
		}
	}
	return nil, errors.New("dh: не удалось найти генератор")
}

// Party - участник обмена
type Party struct {
	Name    string
	params  *Params
	private *big.Int
	public  *big.Int
}

// NewParty создает участника. Если private == nil, ключ выбирается случайно из [1, p-1].
func NewParty(name string, params *Params, private *big.Int) (*Party, error) {
	if private == nil {
		max := new(big.Int).Sub(params.P, one)
		x, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, fmt.Errorf("ошибка генерации приватного ключа: %w", err)
		}
		private = x.Add(x, one)
	} else if private.Sign() <= 0 || private.Cmp(params.P) >= 0 {
		return nil, ErrInvalidPrivate
	}

	return &Party{
		Name:    name,
		params:  params,
		private: new(big.Int).Set(private),
		public:  new(big.Int).Exp(params.G, private, params.P),
	}, nil
}

// PublicKey возвращает g^x mod p
func (party *Party) PublicKey() *big.Int {
	return new(big.Int).Set(party.public)
}

// SharedSecret вычисляет y^x mod p. Ключи 0, 1, p-1 и вне [0, p) отклоняются.
func (party *Party) SharedSecret(otherPublic *big.Int) (*big.Int, error) {
	pMinus1 := new(big.Int).Sub(party.params.P, one)
	if otherPublic.Cmp(one) <= 0 || otherPublic.Cmp(pMinus1) >= 0 {
		return nil, ErrInvalidPublicKey
	}
	return new(big.Int).Exp(otherPublic, party.private, party.params.P), nil
}
