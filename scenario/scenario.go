// Package scenario выполняет сценарии обмена ключом с последующим
// симметричным шифрованием. Вход - строки "ключ: значение".
package scenario

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"symcipher/dh"
	"symcipher/engine"
	"symcipher/keymaterial"
	"symcipher/rsakey"
)

// UnknownScenarioError - поле scenario не распознано
type UnknownScenarioError string

func (e UnknownScenarioError) Error() string {
	return "scenario: неизвестный сценарий " + strconv.Quote(string(e))
}

// MissingFieldError - во входе нет обязательного поля
type MissingFieldError string

func (e MissingFieldError) Error() string {
	return "scenario: нет поля " + strconv.Quote(string(e))
}

// Input - разобранные поля сценария; ключи в нижнем регистре
type Input map[string]string

// Parse читает строки "ключ: значение". Строки без двоеточия пропускаются,
// повторные строки message склеиваются через перевод строки.
func Parse(r io.Reader) (Input, error) {
	in := make(Input)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		k, v, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(line) == "" {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)

		if prev, seen := in[k]; seen && k == "message" {
			v = prev + "\n" + v
		}
		in[k] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения сценария: %w", err)
	}
	return in, nil
}

func (in Input) get(key string) (string, error) {
	v, ok := in[key]
	if !ok {
		return "", MissingFieldError(key)
	}
	return v, nil
}

func (in Input) bigInt(key string) (*big.Int, error) {
	v, err := in.get(key)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return nil, fmt.Errorf("scenario: поле %s не целое число: %q", key, v)
	}
	return n, nil
}

func (in Input) optionalBigInt(key string) (*big.Int, error) {
	if _, ok := in[key]; !ok {
		return nil, nil
	}
	return in.bigInt(key)
}

// Run выполняет сценарий и печатает промежуточные значения в out
func Run(in Input, out io.Writer) error {
	name, err := in.get("scenario")
	if err != nil {
		return err
	}

	switch name {
	case "DH_AES":
		return runDH(in, out, "aes", 16)
	case "DH_DES":
		return runDH(in, out, "des", 8)
	case "RSA_AES":
		return runRSA(in, out, "aes")
	case "RSA_DES":
		return runRSA(in, out, "des")
	default:
		return UnknownScenarioError(name)
	}
}

// runDH получает ключ из общего секрета DH. Без p и g параметры генерируются
// размером dh_bit_size, без alice_private/bob_private ключи выбираются случайно.
func runDH(in Input, out io.Writer, cipherName string, keySize int) error {
	message, err := in.get("message")
	if err != nil {
		return err
	}

	if cipherName == "aes" {
		if v, ok := in["aes_key_size"]; ok {
			if keySize, err = strconv.Atoi(v); err != nil {
				return fmt.Errorf("scenario: поле aes_key_size: %w", err)
			}
		}
	}

	params, err := dhParams(in, out)
	if err != nil {
		return err
	}
	alicePrivate, err := in.optionalBigInt("alice_private")
	if err != nil {
		return err
	}
	bobPrivate, err := in.optionalBigInt("bob_private")
	if err != nil {
		return err
	}

	alice, err := dh.NewParty("alice", params, alicePrivate)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "alice_public: %s\n", alice.PublicKey())
	bob, err := dh.NewParty("bob", params, bobPrivate)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "bob_public: %s\n", bob.PublicKey())

	secret, err := bob.SharedSecret(alice.PublicKey())
	if err != nil {
		return err
	}
	check, err := alice.SharedSecret(bob.PublicKey())
	if err != nil {
		return err
	}
	if secret.Cmp(check) != 0 {
		return errors.New("scenario: общие секреты участников не совпадают")
	}
	fmt.Fprintf(out, "shared_secret: %s\n", secret)

	key, err := sharedKey(in, secret, keySize)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s_key: %s\n", cipherName, hex.EncodeToString(key))

	return encryptMessage(in, out, cipherName, key, message)
}

func dhParams(in Input, out io.Writer) (*dh.Params, error) {
	_, hasP := in["p"]
	_, hasG := in["g"]
	if hasP || hasG {
		p, err := in.bigInt("p")
		if err != nil {
			return nil, err
		}
		g, err := in.bigInt("g")
		if err != nil {
			return nil, err
		}
		return dh.NewParams(p, g)
	}

	bits := 256
	if v, ok := in["dh_bit_size"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("scenario: поле dh_bit_size: %w", err)
		}
		bits = n
	}
	params, err := dh.GenerateParams(rand.Reader, bits)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "p: %s\n", params.P)
	fmt.Fprintf(out, "g: %s\n", params.G)
	return params, nil
}

// sharedKey превращает секрет в ключ: kdf fixed (по умолчанию) берет младшие
// байты числа, shake256 хэширует его
func sharedKey(in Input, secret *big.Int, size int) ([]byte, error) {
	switch kdf := in["kdf"]; kdf {
	case "", "fixed":
		return keymaterial.FixedBytes(secret, size)
	case "shake256":
		return keymaterial.Derive(secret.Bytes(), size)
	default:
		return nil, fmt.Errorf("scenario: неизвестный kdf %q", kdf)
	}
}

// runRSA передает симметричный ключ через RSA. Если p и q не заданы,
// ключ RSA генерируется размером rsa_bit_size.
func runRSA(in Input, out io.Writer, cipherName string) error {
	symKey, err := in.get(cipherName + "_key")
	if err != nil {
		return err
	}
	key, err := keymaterial.Parse(symKey)
	if err != nil {
		return err
	}
	message, err := in.get("message")
	if err != nil {
		return err
	}

	priv, err := rsaKey(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "rsa_public_n: %s\n", priv.N)
	fmt.Fprintf(out, "rsa_public_e: %s\n", priv.E)
	fmt.Fprintf(out, "rsa_private_d: %s\n", priv.D)

	wrapped := priv.Encrypt(key)
	fmt.Fprintf(out, "encrypted_%s_key: %s\n", cipherName, hex.EncodeToString(wrapped))

	unwrapped, err := priv.Decrypt(wrapped)
	if err != nil {
		return err
	}
	// блоки RSA выровнены вправо, ключ - последние len(key) байт
	unwrapped = unwrapped[len(unwrapped)-len(key):]
	fmt.Fprintf(out, "decrypted_%s_key: %s\n", cipherName, hex.EncodeToString(unwrapped))

	return encryptMessage(in, out, cipherName, unwrapped, message)
}

func rsaKey(in Input) (*rsakey.PrivateKey, error) {
	e := big.NewInt(rsakey.DefaultExponent)
	if _, ok := in["e"]; ok {
		var err error
		if e, err = in.bigInt("e"); err != nil {
			return nil, err
		}
	}

	_, hasP := in["p"]
	_, hasQ := in["q"]
	if hasP || hasQ {
		p, err := in.bigInt("p")
		if err != nil {
			return nil, err
		}
		q, err := in.bigInt("q")
		if err != nil {
			return nil, err
		}
		return rsakey.NewKey(p, q, e)
	}

	bits := 1024
	if v, ok := in["rsa_bit_size"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("scenario: поле rsa_bit_size: %w", err)
		}
		bits = n
	}
	return rsakey.GenerateKey(rand.Reader, bits)
}

// encryptMessage шифрует и расшифровывает message выбранным шифром.
// DES по умолчанию использует xor_based, поле method переопределяет.
func encryptMessage(in Input, out io.Writer, cipherName string, key []byte, message string) error {
	method := ""
	if cipherName == "des" {
		method = "xor_based"
		if m, ok := in["method"]; ok {
			method = m
		}
	}
	c, err := engine.New(cipherName, key, method)
	if err != nil {
		return err
	}

	ct := c.Encrypt([]byte(message))
	fmt.Fprintf(out, "ciphertext: %s\n", hex.EncodeToString(ct))

	pt, err := c.Decrypt(ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "decrypted_message: %s\n", pt)
	return nil
}
