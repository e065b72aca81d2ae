package middleware

import (
	"net/http"
	"sync"
	"time"

	"estoquepos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// janela fixa por IP, em memória. Suficiente para um backend de nó único;
// coordenação entre réplicas fica fora do escopo.
type ipLimiter struct {
	mu      sync.Mutex
	janelas map[string]*janela
	limite  int
	duracao time.Duration
}

type janela struct {
	contagem int
	expiraEm time.Time
}

func newIPLimiter(limite int, duracao time.Duration) *ipLimiter {
	l := &ipLimiter{
		janelas: make(map[string]*janela),
		limite:  limite,
		duracao: duracao,
	}
	go l.purgar()
	return l
}

// permitir conta a requisição e devolve se ela passa e quando a janela vence.
func (l *ipLimiter) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	agora := time.Now()
	j, ok := l.janelas[ip]
	if !ok || agora.After(j.expiraEm) {
		j = &janela{expiraEm: agora.Add(l.duracao)}
		l.janelas[ip] = j
	}
	j.contagem++
	return j.contagem <= l.limite, j.expiraEm
}

// purgar descarta janelas vencidas para o mapa não crescer com IPs que
// nunca voltam.
func (l *ipLimiter) purgar() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		agora := time.Now()
		l.mu.Lock()
		removidas := 0
		for ip, j := range l.janelas {
			if agora.After(j.expiraEm) {
				delete(l.janelas, ip)
				removidas++
			}
		}
		restantes := len(l.janelas)
		l.mu.Unlock()
		if removidas > 0 {
			log.Debug().
				Int("removidas", removidas).
				Int("restantes", restantes).
				Msg("janelas de rate limit purgadas")
		}
	}
}

func (l *ipLimiter) middleware(mensagem string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, expiraEm := l.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", expiraEm.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(mensagem))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limita tentativas de login a 20 por minuto por IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newIPLimiter(20, time.Minute).
		middleware("Muitas tentativas de login. Tente novamente em 1 minuto.")
}

// RateLimiter é o limitador geral da API, aplicado a toda a cadeia.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window).
		middleware("Muitas solicitações. Tente novamente em instantes.")
}
