package finance

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función sobre un asiento dentro de una transacción;
// el abono lee la fila bloqueada para que dos pagos concurrentes no excedan
// el saldo.
type TxRunner interface {
	RunRecord(ctx context.Context, fn func(recordRepo repository.FinancialRecordRepository) error) error
}
