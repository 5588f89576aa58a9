package contrato

import (
	"context"
)

// ContratoRepository defines data access for contracts and their
// amendments.
type ContratoRepository interface {
	// GetByID retrieves a contract with its amendments eagerly loaded.
	GetByID(ctx context.Context, id int64) (Contrato, error)

	// GetByIDs retrieves the given contracts (amendments included) in a
	// single query round-trip, keyed by id. Ids absent from the result
	// simply do not exist; no error is returned for them.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Contrato, error)

	// GetByAnexoIDs resolves amendment ids to their owning contracts
	// (amendments included), keyed by anexo id. Unknown anexo ids are
	// absent from the map.
	GetByAnexoIDs(ctx context.Context, anexoIDs []int64) (map[int64]Contrato, error)
}
