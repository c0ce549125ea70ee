package ports

// Resultados de operación para métricas.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics define el puerto de instrumentación de las operaciones de cola y pago.
type Metrics interface {
	// QueueOperation registra una operación (join, leave, remove, walk_in) con su resultado.
	QueueOperation(operation, status string)
	// PaymentVerification registra el resultado de una verificación (verified, invalid_signature, join_failed, ...).
	PaymentVerification(result string)
}

// NopMetrics descarta las métricas.
type NopMetrics struct{}

func (NopMetrics) QueueOperation(string, string) {}
func (NopMetrics) PaymentVerification(string)    {}
