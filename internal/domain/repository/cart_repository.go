package repository

import (
	"context"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia del carrito. Todas las operaciones
// están acotadas al usuario dueño de las líneas.
type CartRepository interface {
	// AddOne crea la línea con cantidad 1 o incrementa la existente (una sola fila por usuario+ítem).
	AddOne(ctx context.Context, userID, itemID string) (entry *entity.CartEntry, created bool, err error)
	// DecrementOne resta una unidad solo si la cantidad es mayor a 1; devuelve nil si no aplicó.
	DecrementOne(ctx context.Context, userID, entryID string) (*entity.CartEntry, error)
	// Delete elimina la línea; devuelve nil si no existe.
	Delete(ctx context.Context, userID, entryID string) (*entity.CartEntry, error)
	// ListLines devuelve las líneas del usuario unidas con precio, stock y descripción actuales.
	ListLines(ctx context.Context, userID string) ([]entity.CartLine, error)
	// ListLinesForUpdate igual que ListLines pero bloquea las filas de ítems y líneas (SELECT FOR UPDATE)
	// en orden de item_id. Solo tiene sentido dentro de una transacción.
	ListLinesForUpdate(ctx context.Context, userID string) ([]entity.CartLine, error)
	// ClearEntries elimina solo las líneas indicadas del usuario.
	ClearEntries(ctx context.Context, userID string, entryIDs []string) (int64, error)
}
