package queue

import (
	"context"

	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Es la única garantía de atomicidad
// para unirse (delete + insert) y para atender (historial + delete).
type TxRunner interface {
	RunQueue(ctx context.Context, fn func(
		queueRepo repository.QueueRepository,
		historyRepo repository.ServiceHistoryRepository,
	) error) error
}
