// Package filecrypt шифрует потоки и файлы целиком, при желании сжимая
// открытый текст LZ4 перед шифрованием.
package filecrypt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"

	"symcipher/engine"
	"symcipher/helpers"
)

// Типы кадра сжатия
const (
	frameRaw byte = 0
	frameLZ4 byte = 1
)

// заголовок кадра: тип и исходная длина uint32 big-endian
const headerSize = 5

// ErrBadFrame - расшифрованный текст не похож на кадр сжатия
var ErrBadFrame = errors.New("filecrypt: поврежденный кадр сжатия")

// Options - параметры обработки
type Options struct {
	// Compress сжимает открытый текст LZ4 до шифрования
	Compress bool
}

var logger = helpers.NewLogger("filecrypt")

// Encrypt читает in до конца, шифрует и пишет результат в out
func Encrypt(c engine.Cipher, in io.Reader, out io.Writer, opts Options) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("ошибка чтения: %w", err)
	}

	if opts.Compress {
		data, err = compress(data)
		if err != nil {
			return err
		}
	}

	if _, err := out.Write(c.Encrypt(data)); err != nil {
		return fmt.Errorf("ошибка записи: %w", err)
	}
	return nil
}

// Decrypt обращает Encrypt; opts должны совпадать с использованными при шифровании
func Decrypt(c engine.Cipher, in io.Reader, out io.Writer, opts Options) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("ошибка чтения: %w", err)
	}

	data, err = c.Decrypt(data)
	if err != nil {
		return fmt.Errorf("ошибка расшифрования: %w", err)
	}

	if opts.Compress {
		data, err = decompress(data)
		if err != nil {
			return err
		}
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("ошибка записи: %w", err)
	}
	return nil
}

// EncryptFile шифрует файл inputPath в outputPath
func EncryptFile(c engine.Cipher, inputPath, outputPath string, opts Options) error {
	return processFile(Encrypt, c, inputPath, outputPath, opts)
}

// DecryptFile расшифровывает файл inputPath в outputPath
func DecryptFile(c engine.Cipher, inputPath, outputPath string, opts Options) error {
	return processFile(Decrypt, c, inputPath, outputPath, opts)
}

type processFunc func(engine.Cipher, io.Reader, io.Writer, Options) error

// результат собирается в памяти, выходной файл заменяется только при успехе
func processFile(fn processFunc, c engine.Cipher, inputPath, outputPath string, opts Options) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("ошибка открытия входного файла: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := fn(c, f, &buf, opts); err != nil {
		return err
	}
	return WriteFile(outputPath, buf.Bytes())
}

// WriteFile пишет data во временный файл рядом с path и переименовывает его в path.
// При ошибке прежнее содержимое path не меняется.
func WriteFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("ошибка создания выходного файла: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("ошибка записи: %w", err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("ошибка записи: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия выходного файла: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ошибка замены выходного файла: %w", err)
	}
	return nil
}

func compress(data []byte) ([]byte, error) {
	frame := make([]byte, headerSize+lz4.CompressBlockBound(len(data)))
	binary.BigEndian.PutUint32(frame[1:headerSize], uint32(len(data)))

	n, err := lz4.CompressBlock(data, frame[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка сжатия lz4: %w", err)
	}

	// n == 0 - данные несжимаемы
	if n > 0 && n < len(data) {
		frame[0] = frameLZ4
		logger.Debug("lz4", len(data), "->", n)
		return frame[:headerSize+n], nil
	}

	frame[0] = frameRaw
	frame = append(frame[:headerSize], data...)
	return frame, nil
}

func decompress(frame []byte) ([]byte, error) {
	if len(frame) < headerSize {
		return nil, ErrBadFrame
	}
	size := int(binary.BigEndian.Uint32(frame[1:headerSize]))
	payload := frame[headerSize:]

	switch frame[0] {
	case frameRaw:
		if len(payload) != size {
			return nil, ErrBadFrame
		}
		return payload, nil

	case frameLZ4:
		// степень сжатия LZ4 не превышает 255
		if size > 255*len(payload)+16 {
			return nil, ErrBadFrame
		}
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
		}
		if n != size {
			return nil, fmt.Errorf("%w: распаковано %d байт, ожидалось %d", ErrBadFrame, n, size)
		}
		return dst, nil

	default:
		return nil, fmt.Errorf("%w: неизвестный тип %d", ErrBadFrame, frame[0])
	}
}
