package sync

import (
	"context"
	"time"

	"github.com/jhoicas/adoptease-api/pkg/logger"
)

// Runner ejecuta una pasada de sincronización; lo implementa *Engine.
type Runner interface {
	Sync(ctx context.Context) (*Report, error)
}

// Watcher repite pasadas completas cada Interval. Tras un error espera Backoff y reintenta;
// nunca termina por un fallo de sincronización, solo al cancelar el contexto.
type Watcher struct {
	runner   Runner
	interval time.Duration
	backoff  time.Duration
	// delayFirst espera un intervalo antes de la primera pasada (ya se sincronizó al arrancar).
	delayFirst bool
	log        *logger.Logger
}

// NewWatcher construye el bucle continuo. backoff <= 0 usa interval.
func NewWatcher(runner Runner, interval, backoff time.Duration, log *logger.Logger) *Watcher {
	if backoff <= 0 {
		backoff = interval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{runner: runner, interval: interval, backoff: backoff, log: log.Child("sync-watcher")}
}

// DelayFirst hace que la primera pasada ocurra tras un intervalo.
func (w *Watcher) DelayFirst() *Watcher {
	w.delayFirst = true
	return w
}

// Run bloquea hasta que ctx se cancela. Devuelve nil en un apagado ordenado.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Dur("backoff", w.backoff).Msg("sincronización continua iniciada")
	wait := time.Duration(0)
	if w.delayFirst {
		wait = w.interval
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("sincronización continua detenida")
			return nil
		case <-timer.C:
		}

		wait = w.interval
		if _, err := w.runner.Sync(ctx); err != nil {
			if ctx.Err() != nil {
				w.log.Info().Msg("sincronización continua detenida")
				return nil
			}
			w.log.Error().Err(err).Dur("retry_in", w.backoff).Msg("pasada fallida; se reintentará")
			wait = w.backoff
		}
		timer.Reset(wait)
	}
}
