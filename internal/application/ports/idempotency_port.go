package ports

import "context"

// IdempotencyStore reserva claves Idempotency-Key para no registrar dos veces el mismo movimiento.
type IdempotencyStore interface {
	// Claim devuelve true si la clave no estaba reservada y queda reservada ahora.
	Claim(ctx context.Context, key string) (bool, error)
	// Release libera una clave cuyo movimiento fue rechazado, para que el cliente pueda reintentar.
	Release(ctx context.Context, key string) error
}
