package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
// Ventas e items viven en tablas separadas sin foreign keys: las referencias
// a cliente y producto se guardan tal cual (escritura tolerante).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta y asigna el ID generado.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO ventas (cliente_cedula, total, created_at)
		VALUES ($1, $2, $3) RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sale.ClienteCedula, sale.Total, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID (solo cabecera).
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `SELECT id, cliente_cedula, total, created_at FROM ventas WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ClienteCedula, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &s, nil
}

// List lista ventas, más recientes primero. Los filtros de cédula y rango de
// fechas son opcionales; las fechas son límites inclusivos.
func (r *SaleRepo) List(f repository.SaleFilter) ([]*entity.Sale, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, cliente_cedula, total, created_at FROM ventas`)
	var conds []string
	var args []any
	if f.ClienteCedula != "" {
		args = append(args, f.ClienteCedula)
		conds = append(conds, `cliente_cedula = $`+strconv.Itoa(len(args)))
	}
	if f.FechaInicio != nil {
		args = append(args, *f.FechaInicio)
		conds = append(conds, `created_at >= $`+strconv.Itoa(len(args)))
	}
	if f.FechaFin != nil {
		args = append(args, *f.FechaFin)
		conds = append(conds, `created_at <= $`+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(` WHERE ` + strings.Join(conds, ` AND `))
	}
	args = append(args, f.Limit)
	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)))
	args = append(args, f.Offset)
	sb.WriteString(` OFFSET $` + strconv.Itoa(len(args)))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ClienteCedula, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `UPDATE ventas SET cliente_cedula = $2, total = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, sale.ID, sale.ClienteCedula, sale.Total)
	if err != nil {
		return fmt.Errorf("update venta: %w", err)
	}
	return nil
}

// Delete elimina una venta por ID (solo cabecera; los items se eliminan con
// DeleteItemsBySale dentro de la misma transacción).
func (r *SaleRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta y asigna el ID generado.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO venta_items (venta_id, producto_id, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.VentaID, item.ProductoID, item.Cantidad, item.PrecioUnitario,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert venta item: %w", err)
	}
	return nil
}

// GetItemByID obtiene una línea de venta por ID.
func (r *SaleRepo) GetItemByID(id int64) (*entity.SaleItem, error) {
	query := `SELECT id, venta_id, producto_id, cantidad, precio_unitario FROM venta_items WHERE id = $1`
	var it entity.SaleItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.VentaID, &it.ProductoID, &it.Cantidad, &it.PrecioUnitario,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta item: %w", err)
	}
	return &it, nil
}

// ItemsBySale lista las líneas de una venta, en orden de inserción.
func (r *SaleRepo) ItemsBySale(ventaID int64) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario
		FROM venta_items WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list items de venta: %w", err)
	}
	return scanItems(rows)
}

// ListItems lista líneas de venta con paginación, sin filtro de venta.
func (r *SaleRepo) ListItems(limit, offset int) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario
		FROM venta_items ORDER BY id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list venta items: %w", err)
	}
	return scanItems(rows)
}

// UpdateItem actualiza cantidad y precio unitario de una línea.
func (r *SaleRepo) UpdateItem(item *entity.SaleItem) error {
	query := `UPDATE venta_items SET cantidad = $2, precio_unitario = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.Cantidad, item.PrecioUnitario)
	if err != nil {
		return fmt.Errorf("update venta item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea por ID.
func (r *SaleRepo) DeleteItem(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM venta_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venta item: %w", err)
	}
	return nil
}

// DeleteItemsBySale elimina todas las líneas de una venta.
func (r *SaleRepo) DeleteItemsBySale(ventaID int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM venta_items WHERE venta_id = $1`, ventaID)
	if err != nil {
		return fmt.Errorf("delete items de venta: %w", err)
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]*entity.SaleItem, error) {
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.VentaID, &it.ProductoID, &it.Cantidad, &it.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("scan venta item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
