package rijndael

import "symcipher/gf"

// sBox и invSBox строятся при инициализации пакета:
// S(a) = affine(a^-1) в GF(2^8), S(0) = affine(0) = 0x63
var sBox, invSBox [256]byte

// rcon[i] - старший байт раундовой константы x^(i-1) в GF(2^8); rcon[0] не используется
var rcon = [11]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

func init() {
	for i := 0; i < 256; i++ {
		x := byte(i)
		if x != 0 {
			inv, err := gf.AES.Inverse(x)
			if err != nil {
				panic(err)
			}
			x = inv
		}
		s := affine(x)
		sBox[i] = s
		invSBox[s] = byte(i)
	}
}

// affine - аффинное преобразование S-блока: b_i ^ b_(i+4) ^ b_(i+5) ^ b_(i+6) ^ b_(i+7) ^ c_i, c = 0x63
func affine(b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		bit := (b>>i ^ b>>((i+4)%8) ^ b>>((i+5)%8) ^ b>>((i+6)%8) ^ b>>((i+7)%8)) & 1
		result |= bit << i
	}
	return result ^ 0x63
}
