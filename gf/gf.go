package gf

import (
	"errors"
	"fmt"
)

// AESModulus - младшие 8 бит полинома x^8 + x^4 + x^3 + x + 1 (0x11B)
const AESModulus byte = 0x1B

// ErrNoInverse возвращается при попытке обратить ноль
var ErrNoInverse = errors.New("обратный элемент для 0 не существует")

// ReducibleModulusError возникает при использовании приводимого модуля
type ReducibleModulusError struct {
	Modulus byte
}

func (e *ReducibleModulusError) Error() string {
	return fmt.Sprintf("модуль 0x%02X (0x1%02X) является приводимым над GF(2^8)", e.Modulus, e.Modulus)
}

// Field - поле GF(2^8) с фиксированным неприводимым модулем.
// Модуль хранится без старшего бита (x^8 подразумевается).
type Field struct {
	modulus byte
}

// AES - поле, используемое в MixColumns и при построении S-блока
var AES = mustField(AESModulus)

// NewField создает поле по модулю x^8 + modulus
func NewField(modulus byte) (*Field, error) {
	if !IsIrreducible(modulus) {
		return nil, &ReducibleModulusError{Modulus: modulus}
	}
	return &Field{modulus: modulus}, nil
}

func mustField(modulus byte) *Field {
	f, err := NewField(modulus)
	if err != nil {
		panic(err)
	}
	return f
}

// Xtime умножает элемент на x (удвоение с редукцией при переполнении)
func (f *Field) Xtime(a byte) byte {
	if a&0x80 != 0 {
		return a<<1 ^ f.modulus
	}
	return a << 1
}

// Mul выполняет умножение сдвигами и сложениями, 8 шагов
func (f *Field) Mul(a, b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			result ^= a
		}
		a = f.Xtime(a)
		b >>= 1
	}
	return result
}

// Inverse находит обратный элемент расширенным алгоритмом Евклида
func (f *Field) Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrNoInverse
	}

	r0, r1 := uint16(f.modulus)|0x100, uint16(a)
	t0, t1 := uint16(0), uint16(1)
	for r1 != 0 {
		q, r := polyDivMod(r0, r1)
		r0, r1 = r1, r
		t0, t1 = t1, t0^polyMul(q, t1)
	}
	if r0 != 1 {
		return 0, fmt.Errorf("элемент 0x%02X не обратим", a)
	}
	return byte(t0), nil
}

// Xtime удваивает элемент поля AES
func Xtime(a byte) byte {
	return AES.Xtime(a)
}

// Mul умножает два элемента поля AES
func Mul(a, b byte) byte {
	return AES.Mul(a, b)
}

// IsIrreducible проверяет неприводимость x^8 + modulus над GF(2).
// Полином степени 8 приводим тогда и только тогда, когда у него есть
// делитель степени от 1 до 4.
func IsIrreducible(modulus byte) bool {
	poly := uint16(modulus) | 0x100
	for div := uint16(0x02); div < 0x20; div++ {
		if _, r := polyDivMod(poly, div); r == 0 {
			return false
		}
	}
	return true
}

func degree(poly uint16) int {
	deg := -1
	for poly != 0 {
		poly >>= 1
		deg++
	}
	return deg
}

func polyMul(a, b uint16) uint16 {
	var result uint16
	for b != 0 {
		if b&1 == 1 {
			result ^= a
		}
		a <<= 1
		b >>= 1
	}
	return result
}

func polyDivMod(a, b uint16) (q, r uint16) {
	degB := degree(b)
	for degA := degree(a); degA >= degB && a != 0; degA = degree(a) {
		shift := degA - degB
		q ^= 1 << shift
		a ^= b << shift
	}
	return q, a
}
