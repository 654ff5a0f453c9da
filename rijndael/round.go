package rijndael

import "symcipher/gf"

// state - матрица 4x4 байт, индексируется [строка][столбец].
// Байт i блока лежит в строке i%4, столбце i/4.
type state [4][Nb]byte

func bytesToState(b []byte) state {
	var s state
	for col := 0; col < Nb; col++ {
		for row := 0; row < 4; row++ {
			s[row][col] = b[row+4*col]
		}
	}
	return s
}

func (s *state) toBytes(b []byte) {
	for col := 0; col < Nb; col++ {
		for row := 0; row < 4; row++ {
			b[row+4*col] = s[row][col]
		}
	}
}

func (s *state) subBytes() {
	for row := range s {
		for col := range s[row] {
			s[row][col] = sBox[s[row][col]]
		}
	}
}

func (s *state) invSubBytes() {
	for row := range s {
		for col := range s[row] {
			s[row][col] = invSBox[s[row][col]]
		}
	}
}

// shiftRows сдвигает строку r циклически влево на r позиций
func (s *state) shiftRows() {
	for row := 1; row < 4; row++ {
		var tmp [Nb]byte
		for col := 0; col < Nb; col++ {
			tmp[col] = s[row][(col+row)%Nb]
		}
		s[row] = tmp
	}
}

// invShiftRows сдвигает строку r циклически вправо на r позиций
func (s *state) invShiftRows() {
	for row := 1; row < 4; row++ {
		var tmp [Nb]byte
		for col := 0; col < Nb; col++ {
			tmp[(col+row)%Nb] = s[row][col]
		}
		s[row] = tmp
	}
}

func (s *state) mixColumns() {
	for col := 0; col < Nb; col++ {
		s0, s1, s2, s3 := s[0][col], s[1][col], s[2][col], s[3][col]

		s[0][col] = gf.Xtime(s0) ^ gf.Xtime(s1) ^ s1 ^ s2 ^ s3
		s[1][col] = s0 ^ gf.Xtime(s1) ^ gf.Xtime(s2) ^ s2 ^ s3
		s[2][col] = s0 ^ s1 ^ gf.Xtime(s2) ^ gf.Xtime(s3) ^ s3
		s[3][col] = gf.Xtime(s0) ^ s0 ^ s1 ^ s2 ^ gf.Xtime(s3)
	}
}

func (s *state) invMixColumns() {
	for col := 0; col < Nb; col++ {
		s0, s1, s2, s3 := s[0][col], s[1][col], s[2][col], s[3][col]

		s[0][col] = gf.Mul(s0, 0x0e) ^ gf.Mul(s1, 0x0b) ^ gf.Mul(s2, 0x0d) ^ gf.Mul(s3, 0x09)
		s[1][col] = gf.Mul(s0, 0x09) ^ gf.Mul(s1, 0x0e) ^ gf.Mul(s2, 0x0b) ^ gf.Mul(s3, 0x0d)
		s[2][col] = gf.Mul(s0, 0x0d) ^ gf.Mul(s1, 0x09) ^ gf.Mul(s2, 0x0e) ^ gf.Mul(s3, 0x0b)
		s[3][col] = gf.Mul(s0, 0x0b) ^ gf.Mul(s1, 0x0d) ^ gf.Mul(s2, 0x09) ^ gf.Mul(s3, 0x0e)
	}
}

// addRoundKey складывает столбец col со словом w[round*Nb+col];
// старший байт слова попадает в строку 0
func (s *state) addRoundKey(w []uint32, round int) {
	for col := 0; col < Nb; col++ {
		k := w[round*Nb+col]
		s[0][col] ^= byte(k >> 24)
		s[1][col] ^= byte(k >> 16)
		s[2][col] ^= byte(k >> 8)
		s[3][col] ^= byte(k)
	}
}
