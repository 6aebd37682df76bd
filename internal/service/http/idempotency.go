package httpapi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	// IdempotencyKeyHeader — заголовок запроса с ключом идемпотентности.
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader выставляется на ответах, взятых из кеша.
	ReplayedHeader = "Idempotent-Replayed"

	maxRequestBodySize = 1 << 20
)

type idempotency struct {
	repo   domain.IdempotencyRepository
	ttl    time.Duration
	logger *log.Entry
}

func newIdempotency(repo domain.IdempotencyRepository, ttl time.Duration, logger *log.Entry) *idempotency {
	if ttl <= 0 {
		ttl = domain.DefaultIdempotencyTTL
	}
	return &idempotency{repo: repo, ttl: ttl, logger: logger}
}

// middleware сохраняет ответ на запрос с Idempotency-Key и повторяет его
// для запросов с тем же ключом и телом.
func (i *idempotency) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
		if i.repo == nil || key == "" {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
		if err != nil {
			writeBodyError(w, err)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		record, err := i.repo.CreateProcessing(r.Context(), key, requestHash(r, body), time.Now().UTC().Add(i.ttl))
		if err != nil {
			i.replay(w, key, record, err)
			return
		}

		// Результат фиксируется и после отмены запроса клиентом.
		doneCtx := context.WithoutCancel(r.Context())
		defer func() {
			if p := recover(); p != nil {
				failure, _ := json.Marshal(errorResponse{Error: "internal server error"})
				i.complete(doneCtx, key, http.StatusInternalServerError, failure)
				panic(p)
			}
		}()

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		i.complete(doneCtx, key, rec.status, rec.body.Bytes())
	})
}

// complete переводит ключ в done для 2xx и в failed для остальных статусов.
func (i *idempotency) complete(ctx context.Context, key string, status int, body []byte) {
	var err error
	if status >= 200 && status < 300 {
		err = i.repo.MarkDone(ctx, key, body, status)
	} else {
		err = i.repo.MarkFailed(ctx, key, body, status)
	}
	if err != nil {
		i.logger.WithError(err).WithField("idempotency_key", key).Warn("failed to store idempotent response")
	}
}

func (i *idempotency) replay(w http.ResponseWriter, key string, record domain.IdempotencyRecord, err error) {
	switch {
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrIdempotencyKeyAlreadyExists):
		if !record.Completed() {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "request with the same idempotency key is already processing"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(ReplayedHeader, "true")
		w.WriteHeader(record.HTTPStatus)
		_, _ = w.Write(record.ResponseBody)
	default:
		i.logger.WithError(err).WithField("idempotency_key", key).Error("failed to create idempotency record")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func requestHash(r *http.Request, body []byte) string {
	h := sha256.New()
	_, _ = io.WriteString(h, r.Method)
	_, _ = io.WriteString(h, " ")
	_, _ = io.WriteString(h, r.URL.Path)
	_, _ = io.WriteString(h, "\n")
	_, _ = h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// responseRecorder дублирует ответ в буфер для кеша идемпотентности.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}
