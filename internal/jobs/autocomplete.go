package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

const (
	lockKey = "salon-scheduler:autocomplete:lock"

	// TTL maior que a varredura mais lenta esperada
	lockTTL = 5 * time.Minute
)

// AutoCompleteRunner roda a varredura de auto-conclusão em intervalo
// fixo, independente do tráfego de requisições. O lock no Redis garante
// que só uma réplica varre por vez; a varredura em si é idempotente,
// então perder o lock nunca corrompe nada.
type AutoCompleteRunner struct {
	uc       *ucAppointment.AutoComplete
	rdb      *redis.Client
	interval time.Duration
}

func NewAutoCompleteRunner(
	uc *ucAppointment.AutoComplete,
	rdb *redis.Client,
	interval time.Duration,
) *AutoCompleteRunner {
	return &AutoCompleteRunner{
		uc:       uc,
		rdb:      rdb,
		interval: interval,
	}
}

// Start bloqueia até ctx ser cancelado. Chamar em goroutine própria.
func (r *AutoCompleteRunner) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// primeira varredura logo na subida
	r.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *AutoCompleteRunner) runOnce(ctx context.Context) {
	ok, err := r.rdb.SetNX(ctx, lockKey, "1", lockTTL).Result()
	if err != nil {
		// Redis fora do ar: varre mesmo assim, a idempotência segura
		log.Printf("autocomplete: lock unavailable, sweeping anyway: %v", err)
	} else if !ok {
		// outra réplica está varrendo
		return
	}

	asOf := timezone.Now()

	count, sweepErr := r.uc.Execute(ctx, asOf)
	if sweepErr != nil {
		log.Printf("autocomplete: sweep failed: %v", sweepErr)
	} else if count > 0 {
		log.Printf("autocomplete: completed %d appointments", count)
	}

	if ok {
		r.rdb.Del(ctx, lockKey)
	}
}
