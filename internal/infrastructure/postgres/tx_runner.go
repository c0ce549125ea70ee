package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/nextcut-api/internal/application/queue"
	"github.com/jhoicas/nextcut-api/internal/domain/repository"
)

var _ queue.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunQueue inicia una transacción, ejecuta fn con los repos de cola e historial atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunQueue(ctx context.Context, fn func(
	queueRepo repository.QueueRepository,
	historyRepo repository.ServiceHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewQueueRepository(tx), NewServiceHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
