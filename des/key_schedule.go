package des

import (
	"encoding/binary"
	"strconv"
)

// KeySize - размер ключа DES в байтах (56 значащих бит и 8 бит четности)
const KeySize = 8

// Rounds - число раундов сети Фейстеля
const Rounds = 16

// KeyLengthError - длина ключа не равна 8 байтам
type KeyLengthError int

func (k KeyLengthError) Error() string {
	return "des: неверная длина ключа " + strconv.Itoa(int(k))
}

// ExpandKey генерирует 16 раундовых подключей по 48 бит.
// Подключ хранится в младших 48 битах uint64. Биты четности не проверяются.
func ExpandKey(key []byte) ([Rounds]uint64, error) {
	var subkeys [Rounds]uint64
	if len(key) != KeySize {
		return subkeys, KeyLengthError(len(key))
	}

	cd := permute(binary.BigEndian.Uint64(key), 64, pc1[:])
	c, d := uint32(cd>>28), uint32(cd&(1<<28-1))

	for round := 0; round < Rounds; round++ {
		c = rotateLeft28(c, shifts[round])
		d = rotateLeft28(d, shifts[round])
		subkeys[round] = permute(uint64(c)<<28|uint64(d), 56, pc2[:])
	}
	return subkeys, nil
}
