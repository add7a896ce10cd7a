// seed importa clientes y productos desde archivos CSV exportados del
// sistema anterior (separados por punto y coma, codificación ISO-8859-1).
//
// Uso: go run ./cmd/seed [-clientes clientes.csv] [-productos productos.csv]
//
// Formatos esperados (sin fila de cabecera):
//
//	clientes.csv:  cedula;nombre;email;telefono;ciudad
//	productos.csv: nombre;descripcion;precio;stock;imagen;categoria_id
//
// categoria_id puede venir vacío. Las filas duplicadas (cédula ya existente)
// se reportan y se saltan.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/infrastructure/postgres"
	"github.com/jortega/ventas-api/pkg/config"
)

func main() {
	clientesPath := flag.String("clientes", "", "CSV de clientes a importar")
	productosPath := flag.String("productos", "", "CSV de productos a importar")
	flag.Parse()

	if *clientesPath == "" && *productosPath == "" {
		fmt.Fprintln(os.Stderr, "nada que importar: use -clientes y/o -productos")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *clientesPath != "" {
		n, err := seedClientes(*clientesPath, postgres.NewCustomerRepository(pool))
		if err != nil {
			fmt.Fprintf(os.Stderr, "importar clientes: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("clientes importados: %d\n", n)
	}

	if *productosPath != "" {
		n, err := seedProductos(*productosPath, postgres.NewProductRepository(pool))
		if err != nil {
			fmt.Fprintf(os.Stderr, "importar productos: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("productos importados: %d\n", n)
	}
}

// readCSV abre el archivo, decodifica ISO-8859-1 y devuelve las filas.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func seedClientes(path string, repo *postgres.CustomerRepo) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		if len(row) < 2 {
			return count, fmt.Errorf("fila %d: se esperan al menos cedula;nombre", i+1)
		}
		c := &entity.Customer{
			Cedula:    row[0],
			Nombre:    row[1],
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if len(row) > 2 {
			c.Email = row[2]
		}
		if len(row) > 3 {
			c.Telefono = row[3]
		}
		if len(row) > 4 {
			c.Ciudad = row[4]
		}
		if err := repo.Create(c); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				fmt.Fprintf(os.Stderr, "fila %d: cédula %s ya existe, saltada\n", i+1, c.Cedula)
				continue
			}
			return count, fmt.Errorf("fila %d: %w", i+1, err)
		}
		count++
	}
	return count, nil
}

func seedProductos(path string, repo *postgres.ProductRepo) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		if len(row) < 4 {
			return count, fmt.Errorf("fila %d: se esperan nombre;descripcion;precio;stock", i+1)
		}
		precio, err := decimal.NewFromString(row[2])
		if err != nil {
			return count, fmt.Errorf("fila %d: precio inválido %q", i+1, row[2])
		}
		stock, err := strconv.Atoi(row[3])
		if err != nil {
			return count, fmt.Errorf("fila %d: stock inválido %q", i+1, row[3])
		}
		p := &entity.Product{
			Nombre:      row[0],
			Descripcion: row[1],
			Precio:      precio.Round(2),
			Stock:       stock,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if len(row) > 4 {
			p.Imagen = row[4]
		}
		if len(row) > 5 && row[5] != "" {
			catID, err := strconv.ParseInt(row[5], 10, 64)
			if err != nil {
				return count, fmt.Errorf("fila %d: categoria_id inválido %q", i+1, row[5])
			}
			p.CategoriaID = &catID
		}
		if err := repo.Create(p); err != nil {
			return count, fmt.Errorf("fila %d: %w", i+1, err)
		}
		count++
	}
	return count, nil
}
