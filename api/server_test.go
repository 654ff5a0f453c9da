package api

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("bad JSON response: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	h := New("").Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}

func TestCiphers(t *testing.T) {
	h := New("").Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ciphers", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"aes"`) {
		t.Fatalf("GET /api/ciphers = %d %s", rec.Code, rec.Body.String())
	}
}

func TestEncryptKnownVector(t *testing.T) {
	h := New("").Handler()

	rec := post(t, h, "/api/des/encrypt", cryptRequest{
		Key:    "133457799BBCDFF1",
		Method: "standard",
		Data:   "0123456789abcdef",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("encrypt = %d %s", rec.Code, rec.Body.String())
	}

	// первый блок - известный вектор DES, второй - блок набивки
	got := decode(t, rec)["data"]
	if len(got) != 32 || !strings.HasPrefix(got, "85e813540f0ab405") {
		t.Fatalf("data = %s", got)
	}
}

func TestRoundTrip(t *testing.T) {
	h := New("").Handler()
	msg := hex.EncodeToString([]byte("over HTTP"))

	for _, tt := range []struct{ cipher, key, method string }{
		{"aes", "000102030405060708090a0b0c0d0e0f", ""},
		{"aes", "000102030405060708090a0b0c0d0e0f1011121314151617", ""},
		{"des", "0011223344556677", "and_based"},
	} {
		enc := post(t, h, "/api/"+tt.cipher+"/encrypt", cryptRequest{Key: tt.key, Method: tt.method, Data: msg})
		if enc.Code != http.StatusOK {
			t.Fatalf("%s encrypt = %d %s", tt.cipher, enc.Code, enc.Body.String())
		}
		ct := decode(t, enc)["data"]

		dec := post(t, h, "/api/"+tt.cipher+"/decrypt", cryptRequest{Key: tt.key, Method: tt.method, Data: ct})
		if dec.Code != http.StatusOK {
			t.Fatalf("%s decrypt = %d %s", tt.cipher, dec.Code, dec.Body.String())
		}
		if got := decode(t, dec)["data"]; got != msg {
			t.Fatalf("%s round trip = %s, want %s", tt.cipher, got, msg)
		}
	}
}

func TestErrors(t *testing.T) {
	h := New("").Handler()

	tests := []struct {
		name string
		path string
		body interface{}
		code int
	}{
		{"unknown cipher", "/api/rc4/encrypt", cryptRequest{Key: "00", Data: ""}, http.StatusNotFound},
		{"bad json", "/api/aes/encrypt", "{", http.StatusBadRequest},
		{"bad key hex", "/api/aes/encrypt", cryptRequest{Key: "zz", Data: ""}, http.StatusBadRequest},
		{"bad data hex", "/api/aes/encrypt", cryptRequest{Key: "00112233445566778899aabbccddeeff", Data: "q"}, http.StatusBadRequest},
		{"short key", "/api/aes/encrypt", cryptRequest{Key: "0011", Data: ""}, http.StatusBadRequest},
		{"bad method", "/api/des/encrypt", cryptRequest{Key: "0011223344556677", Method: "or_based"}, http.StatusBadRequest},
		{"method for aes", "/api/aes/encrypt", cryptRequest{Key: "00112233445566778899aabbccddeeff", Method: "standard"}, http.StatusBadRequest},
		{"misaligned", "/api/des/decrypt", cryptRequest{Key: "0011223344556677", Data: "0011"}, http.StatusBadRequest},
		{"oversized body", "/api/aes/encrypt", cryptRequest{Key: "00112233445566778899aabbccddeeff", Data: strings.Repeat("00", maxBodySize)}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.path, tt.body)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body.String())
			}
			if decode(t, rec)["error"] == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestWrongMethod(t *testing.T) {
	h := New("").Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/aes/encrypt", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET encrypt = %d", rec.Code)
	}
}
