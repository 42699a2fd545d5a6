// Package catalog importa el catálogo de productos desde CSV.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/domain"
)

// Columnas reconocidas en la cabecera. product_code, name y product_type son obligatorias.
const (
	colCode              = "product_code"
	colName              = "name"
	colType              = "product_type"
	colSpecification     = "specification"
	colUnit              = "unit"
	colDescription       = "description"
	colStorageConditions = "storage_conditions"
	colShelfLife         = "shelf_life"
	colCategory          = "category"
)

// ProductCreator lo que el importador necesita del caso de uso de productos.
type ProductCreator interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// RowError fila rechazada por datos inválidos. Line cuenta desde 1 e incluye la cabecera.
type RowError struct {
	Line   int
	Reason string
}

// Report resultado de una importación.
type Report struct {
	Created int
	Skipped int // código ya existente
	Failed  []RowError
}

// Importer lee un CSV de productos y los crea uno por uno.
type Importer struct {
	products ProductCreator
	log      zerolog.Logger
}

// NewImporter construye el importador.
func NewImporter(products ProductCreator, log zerolog.Logger) *Importer {
	return &Importer{products: products, log: log}
}

// Decoder devuelve el decodificador para el nombre de codificación: utf-8 (por defecto), gbk, latin1.
func Decoder(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "gbk", "gb2312", "cp936":
		return simplifiedchinese.GBK, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("%w: codificación %q no soportada", domain.ErrInvalidInput, name)
}

// Import procesa r en la codificación indicada. Los códigos existentes se omiten y las filas
// inválidas quedan en el reporte; un error de lectura o de almacenamiento aborta la importación.
func (im *Importer) Import(ctx context.Context, r io.Reader, encodingName string) (*Report, error) {
	enc, err := Decoder(encodingName)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cabecera CSV: %v", domain.ErrInvalidInput, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colCode, colName, colType} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %s", domain.ErrInvalidInput, required)
		}
	}

	rep := &Report{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return rep, fmt.Errorf("%w: línea %d: %v", domain.ErrInvalidInput, line, err)
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		in := dto.CreateProductRequest{
			ProductCode:       field(colCode),
			Name:              field(colName),
			ProductType:       strings.ToUpper(field(colType)),
			Specification:     field(colSpecification),
			Unit:              field(colUnit),
			Description:       field(colDescription),
			StorageConditions: field(colStorageConditions),
			Category:          field(colCategory),
		}
		if s := field(colShelfLife); s != "" {
			days, err := strconv.Atoi(s)
			if err != nil {
				rep.Failed = append(rep.Failed, RowError{Line: line, Reason: "shelf_life no numérico: " + s})
				continue
			}
			in.ShelfLife = &days
		}

		_, err = im.products.Create(ctx, in)
		switch {
		case err == nil:
			rep.Created++
		case errors.Is(err, domain.ErrDuplicate):
			rep.Skipped++
			im.log.Debug().Str("product_code", in.ProductCode).Msg("producto existente, se omite")
		case errors.Is(err, domain.ErrInvalidInput):
			rep.Failed = append(rep.Failed, RowError{Line: line, Reason: err.Error()})
		default:
			return rep, fmt.Errorf("línea %d: %w", line, err)
		}
	}
	im.log.Info().
		Int("created", rep.Created).
		Int("skipped", rep.Skipped).
		Int("failed", len(rep.Failed)).
		Msg("catálogo importado")
	return rep, nil
}
