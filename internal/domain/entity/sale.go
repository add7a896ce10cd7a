package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta. ClienteCedula es una referencia
// denormalizada sin FK: puede apuntar a un cliente ya eliminado y se resuelve
// de forma perezosa al leer.
type Sale struct {
	ID            int64
	ClienteCedula string // vacía si la venta no tiene cliente asociado
	Total         decimal.Decimal
	CreatedAt     time.Time
}
