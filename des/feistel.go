package des

import "strconv"

// Method - стратегия раундовой функции
type Method int

const (
	// Standard - классическая функция DES: E, XOR, S-блоки, P
	Standard Method = iota
	// XorBased - E и XOR с подключом без S- и P-блоков
	XorBased
	// AndBased - как XorBased, но с побитовым AND
	AndBased
)

// UnsupportedModeError - неизвестный селектор раундовой функции
type UnsupportedModeError string

func (e UnsupportedModeError) Error() string {
	return "des: неподдерживаемая раундовая функция " + strconv.Quote(string(e))
}

func (m Method) String() string {
	switch m {
	case Standard:
		return "standard"
	case XorBased:
		return "xor_based"
	case AndBased:
		return "and_based"
	default:
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMethod разбирает текстовое имя стратегии
func ParseMethod(name string) (Method, error) {
	switch name {
	case "standard":
		return Standard, nil
	case "xor_based":
		return XorBased, nil
	case "and_based":
		return AndBased, nil
	default:
		return 0, UnsupportedModeError(name)
	}
}

// RoundFunction - функция F(R, K) сети Фейстеля: 32-битная правая половина
// и 48-битный подключ дают 32 бита
type RoundFunction interface {
	Apply(right uint32, subkey uint64) uint32
}

// StandardFeistel - раундовая функция DES
type StandardFeistel struct{}

func (StandardFeistel) Apply(right uint32, subkey uint64) uint32 {
	x := expand(right) ^ subkey

	var out uint32
	for i := 0; i < 8; i++ {
		group := uint8(x>>(42-6*i)) & 0x3f
		row := group>>4&0x2 | group&0x1
		col := group >> 1 & 0xf
		out = out<<4 | uint32(sBoxes[i][row][col])
	}
	return uint32(permute(uint64(out), 32, pBox[:]))
}

// XorFeistel оставляет первые 32 бита E(R) XOR K
type XorFeistel struct{}

func (XorFeistel) Apply(right uint32, subkey uint64) uint32 {
	return uint32((expand(right) ^ subkey) >> 16)
}

// AndFeistel оставляет первые 32 бита E(R) AND K
type AndFeistel struct{}

func (AndFeistel) Apply(right uint32, subkey uint64) uint32 {
	return uint32((expand(right) & subkey) >> 16)
}

// roundFunction возвращает реализацию для стратегии
func (m Method) roundFunction() (RoundFunction, error) {
	switch m {
	case Standard:
		return StandardFeistel{}, nil
	case XorBased:
		return XorFeistel{}, nil
	case AndBased:
		return AndFeistel{}, nil
	default:
		return nil, UnsupportedModeError(m.String())
	}
}

func expand(right uint32) uint64 {
	return permute(uint64(right), 32, expansion[:])
}
