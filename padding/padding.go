package padding

import "errors"

// ErrInvalidPadding возвращается, если хвост данных не является набивкой PKCS7
var ErrInvalidPadding = errors.New("неверный padding")

// Padding - схема набивки данных до кратности размеру блока
type Padding interface {
	Pad(data []byte, blockSize int) []byte
	Unpad(data []byte) ([]byte, error)
}

// PKCS7 дописывает n байт со значением n, где 1 <= n <= blockSize.
// Данные, уже кратные блоку, получают целый дополнительный блок.
type PKCS7 struct{}

func (PKCS7) Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// Unpad отбрасывает набивку. Пустой вход возвращается как есть.
func (PKCS7) Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		return data, nil
	}

	n := int(data[length-1])
	if n == 0 || n > length {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[length-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:length-n], nil
}
