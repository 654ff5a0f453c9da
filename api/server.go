// Package api - HTTP-интерфейс к шифрам
package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"symcipher/engine"
	"symcipher/helpers"
	"symcipher/keymaterial"
)

// Server - HTTP-сервер шифрования
type Server struct {
	addr   string
	logger *helpers.Logger
}

// maxBodySize - предел тела запроса: 1 МиБ hex-данных
const maxBodySize = 1 << 20

type cryptRequest struct {
	Key    string `json:"key"`
	Method string `json:"method"`
	Data   string `json:"data"`
}

type cryptResponse struct {
	Data string `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New создает сервер на addr
func New(addr string) *Server {
	return &Server{addr: addr, logger: helpers.NewLogger("api")}
}

// corsMiddleware добавляет CORS-заголовки ко всем ответам
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handler возвращает маршрутизатор со всеми обработчиками
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("symcipher API server"))
	}).Methods("GET", "OPTIONS")

	router.HandleFunc("/api/ciphers", s.handleCiphers).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/{cipher}/encrypt", s.handleEncrypt).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/{cipher}/decrypt", s.handleDecrypt).Methods("POST", "OPTIONS")

	return corsMiddleware(router)
}

// Start запускает сервер и блокируется до ошибки
func (s *Server) Start() error {
	s.logger.Info("сервер слушает", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) handleCiphers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"ciphers": engine.Names()})
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	c, data, ok := s.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cryptResponse{Data: hex.EncodeToString(c.Encrypt(data))})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	c, data, ok := s.prepare(w, r)
	if !ok {
		return
	}

	pt, err := c.Decrypt(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cryptResponse{Data: hex.EncodeToString(pt)})
}

// prepare разбирает запрос и создает шифр; при ошибке ответ уже записан
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (engine.Cipher, []byte, bool) {
	var req cryptRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn(r.URL.Path, "тело запроса больше", tooLarge.Limit, "байт")
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "тело запроса слишком большое"})
			return nil, nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "некорректное тело запроса"})
		return nil, nil, false
	}

	key, err := keymaterial.Parse(req.Key)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, nil, false
	}

	data, err := hex.DecodeString(req.Data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "поле data не в hex"})
		return nil, nil, false
	}

	name := mux.Vars(r)["cipher"]
	c, err := engine.New(name, key, req.Method)
	if err != nil {
		s.writeError(w, err)
		return nil, nil, false
	}

	s.logger.Debug(r.URL.Path, c.Name(), "ключ", keymaterial.Fingerprint(key), len(data), "байт")
	return c, data, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var uce engine.UnknownCipherError
	switch {
	case errors.As(err, &uce):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case engine.IsInputError(err):
		s.logger.Warn("отклонен запрос:", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("внутренняя ошибка", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "внутренняя ошибка"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
