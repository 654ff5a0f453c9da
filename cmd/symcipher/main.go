package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"symcipher/api"
	"symcipher/bench"
	"symcipher/config"
	"symcipher/engine"
	"symcipher/filecrypt"
	"symcipher/helpers"
	"symcipher/keymaterial"
	"symcipher/scenario"
)

const usage = `Использование: symcipher <команда> [флаги]

Команды:
  encrypt   зашифровать файл или stdin
  decrypt   расшифровать файл или stdin
  bench     замер скорости всех шифров
  serve     HTTP API
  scenario  сценарий обмена ключом из stdin (строки "ключ: значение")
`

var logger = helpers.NewLogger("symcipher")

func main() {
	cfg := config.Load()
	helpers.SetDebug(cfg.Debug)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "encrypt":
		err = runCrypt(args, true)
	case "decrypt":
		err = runCrypt(args, false)
	case "bench":
		err = runBench(cfg, args)
	case "serve":
		err = runServe(cfg, args)
	case "scenario":
		err = runScenario(os.Stdin, os.Stdout)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "неизвестная команда %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Ошибка: %v", err)
	}
}

func runCrypt(args []string, encrypt bool) error {
	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	cipherName := fs.String("cipher", "aes", "шифр: "+strings.Join(engine.Names(), ", "))
	method := fs.String("method", "", "раундовая функция DES: standard, xor_based, and_based")
	keyHex := fs.String("key", "", "ключ в hex (AES: 16/24/32 байта, DES: 8 байт)")
	inPath := fs.String("in", "-", "входной файл, - для stdin")
	outPath := fs.String("out", "-", "выходной файл, - для stdout")
	hexIO := fs.Bool("hex", false, "шифртекст в hex вместо двоичного вида")
	compress := fs.Bool("lz4", false, "сжимать открытый текст LZ4")
	fs.Parse(args)

	key, err := keymaterial.Parse(*keyHex)
	if err != nil {
		return err
	}
	c, err := engine.New(*cipherName, key, *method)
	if err != nil {
		return err
	}
	logger.Debug("шифр", c.Name(), "ключ", keymaterial.Fingerprint(key))

	opts := filecrypt.Options{Compress: *compress}
	return cryptPaths(c, *inPath, *outPath, encrypt, opts, *hexIO)
}

// cryptPaths обрабатывает файлы или stdin/stdout; выходной файл
// перезаписывается только после успешной обработки
func cryptPaths(c engine.Cipher, inPath, outPath string, encrypt bool, opts filecrypt.Options, hexIO bool) error {
	if !hexIO && inPath != "-" && outPath != "-" {
		if encrypt {
			return filecrypt.EncryptFile(c, inPath, outPath, opts)
		}
		return filecrypt.DecryptFile(c, inPath, outPath, opts)
	}

	in, closeIn, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer closeIn()

	var out bytes.Buffer
	if encrypt {
		err = encryptTo(c, in, &out, opts, hexIO)
	} else {
		err = decryptFrom(c, in, &out, opts, hexIO)
	}
	if err != nil {
		return err
	}

	if outPath == "-" {
		_, err = os.Stdout.Write(out.Bytes())
		return err
	}
	return filecrypt.WriteFile(outPath, out.Bytes())
}

func encryptTo(c engine.Cipher, in io.Reader, out io.Writer, opts filecrypt.Options, hexOut bool) error {
	if !hexOut {
		return filecrypt.Encrypt(c, in, out, opts)
	}
	var buf bytes.Buffer
	if err := filecrypt.Encrypt(c, in, &buf, opts); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, hex.EncodeToString(buf.Bytes()))
	return err
}

func decryptFrom(c engine.Cipher, in io.Reader, out io.Writer, opts filecrypt.Options, hexIn bool) error {
	if !hexIn {
		return filecrypt.Decrypt(c, in, out, opts)
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("ошибка чтения: %w", err)
	}
	raw, err := hex.DecodeString(strings.Join(strings.Fields(string(text)), ""))
	if err != nil {
		return fmt.Errorf("шифртекст не в hex: %w", err)
	}
	return filecrypt.Decrypt(c, bytes.NewReader(raw), out, opts)
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка открытия входного файла: %w", err)
	}
	return f, f.Close, nil
}

func runBench(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	fs.IntVar(&cfg.Bench.Iterations, "n", cfg.Bench.Iterations, "число итераций")
	fs.IntVar(&cfg.Bench.MessageSize, "size", cfg.Bench.MessageSize, "размер сообщения в байтах")
	fs.IntVar(&cfg.Bench.Seed, "seed", cfg.Bench.Seed, "зерно генератора данных")
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("замер", cfg.Bench.Iterations, "итераций по", cfg.Bench.MessageSize, "байт")
	results, err := bench.Run(ctx, cfg.Bench)
	if err != nil {
		return err
	}
	fmt.Print(bench.Format(results))
	return nil
}

func runServe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr(), "адрес host:port")
	fs.Parse(args)

	fmt.Println("Конфигурация:")
	fmt.Println(cfg)
	return api.New(*addr).Start()
}

func runScenario(in io.Reader, out io.Writer) error {
	input, err := scenario.Parse(in)
	if err != nil {
		return err
	}
	return scenario.Run(input, out)
}
