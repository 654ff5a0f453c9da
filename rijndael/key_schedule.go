package rijndael

import (
	"encoding/binary"
	"strconv"
)

// Nb - число столбцов состояния (слов в блоке), для AES всегда 4
const Nb = 4

// KeyLengthError - длина ключа не 16, 24 или 32 байта
type KeyLengthError int

func (k KeyLengthError) Error() string {
	return "rijndael: неверная длина ключа " + strconv.Itoa(int(k))
}

// Rounds возвращает (Nk, Nr) для длины ключа в байтах
func Rounds(keyLen int) (nk, nr int, err error) {
	switch keyLen {
	case 16, 24, 32:
		nk = keyLen / 4
		return nk, nk + 6, nil
	default:
		return 0, 0, KeyLengthError(keyLen)
	}
}

// ExpandKey строит расписание из Nb*(Nr+1) 32-битных слов
func ExpandKey(key []byte) ([]uint32, error) {
	nk, nr, err := Rounds(len(key))
	if err != nil {
		return nil, err
	}

	w := make([]uint32, Nb*(nr+1))
	for i := 0; i < nk; i++ {
		w[i] = binary.BigEndian.Uint32(key[4*i:])
	}

	for i := nk; i < len(w); i++ {
		temp := w[i-1]
		if i%nk == 0 {
			temp = subWord(rotWord(temp)) ^ uint32(rcon[i/nk])<<24
		} else if nk > 6 && i%nk == 4 {
			temp = subWord(temp)
		}
		w[i] = w[i-nk] ^ temp
	}
	return w, nil
}

// rotWord циклически сдвигает байты слова влево на один
func rotWord(x uint32) uint32 {
	return x<<8 | x>>24
}

// subWord применяет S-блок к каждому байту слова
func subWord(x uint32) uint32 {
	return uint32(sBox[x>>24])<<24 |
		uint32(sBox[x>>16&0xff])<<16 |
		uint32(sBox[x>>8&0xff])<<8 |
		uint32(sBox[x&0xff])
}
