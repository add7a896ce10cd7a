package repository

import (
	"time"

	"github.com/jortega/ventas-api/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas. Las fechas son límites inclusivos
// sobre la fecha de creación.
type SaleFilter struct {
	ClienteCedula string
	FechaInicio   *time.Time
	FechaFin      *time.Time
	Limit         int
	Offset        int
}

// SaleRepository define el puerto de persistencia para Sale y sus items.
// Las referencias a cliente y producto se guardan tal cual, sin verificar
// existencia (escritura tolerante; la resolución es perezosa al leer).
type SaleRepository interface {
	// Create asigna el ID generado en sale.ID.
	Create(sale *entity.Sale) error
	GetByID(id int64) (*entity.Sale, error)
	// List devuelve las ventas más recientes primero.
	List(f SaleFilter) ([]*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id int64) error

	// CreateItem asigna el ID generado en item.ID.
	CreateItem(item *entity.SaleItem) error
	GetItemByID(id int64) (*entity.SaleItem, error)
	ItemsBySale(ventaID int64) ([]*entity.SaleItem, error)
	ListItems(limit, offset int) ([]*entity.SaleItem, error)
	UpdateItem(item *entity.SaleItem) error
	DeleteItem(id int64) error
	DeleteItemsBySale(ventaID int64) error
}
