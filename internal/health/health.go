// Package health отдаёт liveness, readiness и подробный отчёт о зависимостях сервиса.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultCheckTimeout = 2 * time.Second

// Status описывает состояние компонента или сервиса целиком.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// severity упорядочивает статусы: итог сервиса равен худшему из компонентов.
func (s Status) severity() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// Check содержит результат проверки одного компонента.
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response задаёт тело ответа /healthz.
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks,omitempty"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Checker проверяет один компонент: хранилище, Redis, брокер.
type Checker interface {
	Check(ctx context.Context) Check
}

// Handler обслуживает /healthz и /readyz.
type Handler struct {
	mu       sync.RWMutex
	checkers map[string]Checker

	version   string
	startedAt time.Time
	timeout   time.Duration
}

// NewHandler создаёт handler без зарегистрированных проверок.
func NewHandler(version string) *Handler {
	return &Handler{
		checkers:  make(map[string]Checker),
		version:   version,
		startedAt: time.Now(),
		timeout:   defaultCheckTimeout,
	}
}

// RegisterChecker добавляет проверку. Повторная регистрация имени заменяет прежнюю.
func (h *Handler) RegisterChecker(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// Run выполняет проверки параллельно с общим таймаутом.
func (h *Handler) Run(ctx context.Context) Response {
	h.mu.RLock()
	checkers := make(map[string]Checker, len(h.checkers))
	for name, checker := range h.checkers {
		checkers[name] = checker
	}
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		checks = make(map[string]Check, len(checkers))
		g      errgroup.Group
	)
	for name, checker := range checkers {
		g.Go(func() error {
			check := checker.Check(ctx)
			mu.Lock()
			checks[name] = check
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	overall := StatusHealthy
	for _, check := range checks {
		if check.Status.severity() > overall.severity() {
			overall = check.Status
		}
	}

	return Response{
		Status:        overall,
		Timestamp:     time.Now().UTC(),
		Checks:        checks,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	}
}

// ServeHTTP отдаёт подробный отчёт; 503, если хотя бы один компонент недоступен.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := h.Run(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode(response.Status))
	_ = json.NewEncoder(w).Encode(response)
}

// ReadinessHandler отвечает текстом ready или not ready.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	code := statusCode(h.Run(r.Context()).Status)
	body := "ready"
	if code != http.StatusOK {
		body = "not ready"
	}
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// LivenessHandler всегда отвечает 200: процесс жив, раз обслуживает запрос.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func statusCode(status Status) int {
	if status == StatusUnhealthy {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// Pinger умеет проверять доступность компонента.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FuncChecker превращает функцию проверки в Checker.
type FuncChecker struct {
	name string
	fn   func(ctx context.Context) error
}

// NewFuncChecker создаёт проверку из функции: ошибка означает unhealthy.
func NewFuncChecker(name string, fn func(ctx context.Context) error) *FuncChecker {
	return &FuncChecker{name: name, fn: fn}
}

// NewPingChecker строит проверку поверх Ping.
func NewPingChecker(name string, p Pinger) *FuncChecker {
	return NewFuncChecker(name, p.Ping)
}

// Check вызывает функцию и измеряет время ответа.
func (c *FuncChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := c.fn(ctx)

	check := Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}
	return check
}
