// Package bench замеряет скорость шифрования всех поддерживаемых шифров.
package bench

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	mtwist "blitter.com/go/mtwist"

	"symcipher/config"
	"symcipher/engine"
	"symcipher/helpers"
)

// Result - средние времена одного шифра
type Result struct {
	Name    string
	Encrypt time.Duration
	Decrypt time.Duration
	Bytes   int
}

type target struct {
	cipher string
	keyLen int
	method string
}

var targets = []target{
	{"des", 8, "standard"},
	{"des", 8, "xor_based"},
	{"des", 8, "and_based"},
	{"aes", 16, ""},
	{"aes", 24, ""},
	{"aes", 32, ""},
}

var logger = helpers.NewLogger("bench")

// newSource - детерминированный генератор для ключей и сообщений
func newSource(seed int, stream string) *mtwist.MT19937_64 {
	state := make([]byte, 8, 8+len(stream))
	binary.BigEndian.PutUint64(state, uint64(seed))
	state = append(state, stream...)

	m := mtwist.New()
	m.SeedFullState(state)
	return m
}

// Run прогоняет каждый шифр в своей горутине. Сообщение и ключ зависят
// только от cfg.Seed, поэтому результаты воспроизводимы по содержимому.
func Run(ctx context.Context, cfg config.BenchConfig) ([]Result, error) {
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("bench: число итераций должно быть положительным, получено %d", cfg.Iterations)
	}
	if cfg.MessageSize < 0 {
		return nil, fmt.Errorf("bench: отрицательный размер сообщения %d", cfg.MessageSize)
	}

	msg := make([]byte, cfg.MessageSize)
	newSource(cfg.Seed, "message").Read(msg)

	results := make([]Result, len(targets))
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, tg := range targets {
		wg.Add(1)
		go func(index int, tg target) {
			defer wg.Done()

			key := make([]byte, tg.keyLen)
			newSource(cfg.Seed, "key/"+tg.cipher).Read(key)

			c, err := engine.New(tg.cipher, key, tg.method)
			if err != nil {
				errs[index] = err
				return
			}
			results[index], errs[index] = measure(ctx, c, msg, cfg.Iterations)
		}(i, tg)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

func measure(ctx context.Context, c engine.Cipher, msg []byte, iterations int) (Result, error) {
	var encTotal, decTotal time.Duration

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		start := time.Now()
		ct := c.Encrypt(msg)
		encTotal += time.Since(start)

		start = time.Now()
		pt, err := c.Decrypt(ct)
		decTotal += time.Since(start)
		if err != nil {
			return Result{}, fmt.Errorf("bench: %s: %w", c.Name(), err)
		}
		if !bytes.Equal(pt, msg) {
			return Result{}, fmt.Errorf("bench: %s: расшифрованный текст не совпадает с исходным", c.Name())
		}
	}

	res := Result{
		Name:    c.Name(),
		Encrypt: encTotal / time.Duration(iterations),
		Decrypt: decTotal / time.Duration(iterations),
		Bytes:   len(msg),
	}
	logger.Debug("замер завершен", res.Name, res.Encrypt, res.Decrypt)
	return res, nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Format рисует таблицу Algo / Enc(ms) / Dec(ms)
func Format(results []Result) string {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %12s %12s\n", "Algo", "Enc(ms)", "Dec(ms)")
	b.WriteString(strings.Repeat("-", 42) + "\n")
	for _, r := range sorted {
		fmt.Fprintf(&b, "%-16s %12.4f %12.4f\n", r.Name, ms(r.Encrypt), ms(r.Decrypt))
	}
	return b.String()
}
