package entity

// Category representa una categoría de productos.
// Al eliminarla, los productos que la referencian quedan con categoría nula
// (se anula la referencia, no hay borrado en cascada).
type Category struct {
	ID          int64
	Nombre      string
	Descripcion string
}
