package infra

import (
	"errors"
	"sync"
	"time"
)

// Disjuntor em três estados na frente do ViaCEP. Quando o serviço externo cai,
// o prefill de endereço falha na hora em vez de segurar requisições do painel
// esperando timeout.

type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	case CBClosed:
		return "closed"
	}
	return "unknown"
}

// ErrCircuitOpen indica que a chamada nem foi tentada.
var ErrCircuitOpen = errors.New("circuit breaker aberto")

type CircuitBreakerConfig struct {
	FailureThreshold int           // falhas seguidas até abrir
	SuccessThreshold int           // sucessos seguidos em half-open até fechar
	OpenTimeout      time.Duration // tempo aberto antes de sondar
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      time.Minute,
	}
}

type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu       sync.Mutex
	state    CBState
	falhas   int
	sucessos int
	abertoEm time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = time.Minute
	}
	return &CircuitBreaker{cfg: cfg}
}

// State reporta o estado atual, promovendo open→half-open quando o
// timeout de sondagem venceu. Usado também pelo /health.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() CBState {
	if cb.state == CBOpen && time.Since(cb.abertoEm) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.sucessos = 0
	}
	return cb.state
}

// Execute roda fn se o circuito permitir e registra o resultado.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.stateLocked() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.registrar(err == nil)
	return err
}

func (cb *CircuitBreaker) registrar(ok bool) {
	switch {
	case ok && cb.state == CBHalfOpen:
		cb.sucessos++
		if cb.sucessos >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.falhas = 0
			cb.sucessos = 0
		}
	case ok:
		cb.falhas = 0
	case cb.state == CBHalfOpen:
		// sonda falhou, reabre a janela
		cb.state = CBOpen
		cb.abertoEm = time.Now()
		cb.falhas = 0
	default:
		cb.falhas++
		if cb.falhas >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.abertoEm = time.Now()
			cb.sucessos = 0
		}
	}
}
