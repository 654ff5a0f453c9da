package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"symcipher/engine"
	"symcipher/filecrypt"
)

func TestHexRoundTrip(t *testing.T) {
	c, err := engine.New("des", []byte("12345678"), "and_based")
	if err != nil {
		t.Fatal(err)
	}
	msg := "hex armoured message"

	for _, opts := range []filecrypt.Options{{}, {Compress: true}} {
		var armored, plain bytes.Buffer
		if err := encryptTo(c, strings.NewReader(msg), &armored, opts, true); err != nil {
			t.Fatalf("encryptTo: %v", err)
		}
		if !strings.HasSuffix(armored.String(), "\n") {
			t.Error("hex output must end with a newline")
		}
		if err := decryptFrom(c, &armored, &plain, opts, true); err != nil {
			t.Fatalf("decryptFrom: %v", err)
		}
		if plain.String() != msg {
			t.Fatalf("round trip = %q", plain.String())
		}
	}
}

func TestDecryptBadHex(t *testing.T) {
	c, err := engine.New("aes", make([]byte, 16), "")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := decryptFrom(c, strings.NewReader("not hex"), &out, filecrypt.Options{}, true); err == nil {
		t.Fatal("bad hex accepted")
	}
}

func TestCryptPaths(t *testing.T) {
	c, err := engine.New("aes", make([]byte, 32), "")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "msg.txt")
	enc := filepath.Join(dir, "msg.hex")
	dec := filepath.Join(dir, "msg.out")
	if err := os.WriteFile(src, []byte("paths round trip"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, hexIO := range []bool{false, true} {
		if err := cryptPaths(c, src, enc, true, filecrypt.Options{}, hexIO); err != nil {
			t.Fatalf("encrypt hex=%v: %v", hexIO, err)
		}
		if err := cryptPaths(c, enc, dec, false, filecrypt.Options{}, hexIO); err != nil {
			t.Fatalf("decrypt hex=%v: %v", hexIO, err)
		}
		got, err := os.ReadFile(dec)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "paths round trip" {
			t.Fatalf("hex=%v: got %q", hexIO, got)
		}
	}
}

func TestCryptPathsKeepsOutputOnError(t *testing.T) {
	c, err := engine.New("aes", make([]byte, 16), "")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.hex")
	dst := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(src, []byte("zz not hex\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("precious data"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := cryptPaths(c, src, dst, false, filecrypt.Options{}, true); err == nil {
		t.Fatal("bad hex accepted")
	}
	if got, _ := os.ReadFile(dst); string(got) != "precious data" {
		t.Errorf("output after failed decrypt = %q", got)
	}
}

func TestRunScenario(t *testing.T) {
	var out bytes.Buffer
	in := "scenario: DH_AES\np: 23\ng: 5\nalice_private: 6\nbob_private: 15\nmessage: hi\n"
	if err := runScenario(strings.NewReader(in), &out); err != nil {
		t.Fatalf("runScenario: %v", err)
	}
	if !strings.Contains(out.String(), "decrypted_message: hi\n") {
		t.Fatalf("output:\n%s", out.String())
	}
}
