package access

import (
	"fmt"
	"strings"
)

// Field columna sobre la que filtra un Filter.
type Field string

// Campos conocidos por los filtros de alcance.
const (
	FieldID            Field = "id"
	FieldLocationID    Field = "location_id"
	FieldCustomerID    Field = "customer_id"
	FieldProductLineID Field = "product_line_id"
)

// Relation relación navegable desde un registro hacia otro.
type Relation string

// Relaciones usadas por los filtros de alcance.
const (
	RelationOrders   Relation = "orders"   // customer -> orders
	RelationItems    Relation = "items"    // order -> order_items
	RelationProduct  Relation = "product"  // order_item -> product
	RelationCustomer Relation = "customer" // order -> customer
)

// Filter descripción declarativa de qué registros de una colección están en alcance.
// Es un conjunto cerrado de variantes; cada backend de persistencia lo traduce a su predicado.
type Filter interface {
	isFilter()
	fmt.Stringer
}

// MatchAll coincide con todos los registros.
type MatchAll struct{}

// MatchNone no coincide con ningún registro.
type MatchNone struct{}

// FieldIn coincide con los registros cuyo Field pertenece a Values.
type FieldIn struct {
	Field  Field
	Values []int64
}

// ExistsRelated coincide con los registros que tienen al menos un registro relacionado,
// alcanzado recorriendo Path, cuyo Field pertenece a Values.
type ExistsRelated struct {
	Path   []Relation
	Field  Field
	Values []int64
}

func (MatchAll) isFilter()      {}
func (MatchNone) isFilter()     {}
func (FieldIn) isFilter()       {}
func (ExistsRelated) isFilter() {}

func (MatchAll) String() string  { return "all" }
func (MatchNone) String() string { return "none" }

func (f FieldIn) String() string {
	return fmt.Sprintf("%s in %v", f.Field, f.Values)
}

func (f ExistsRelated) String() string {
	parts := make([]string, len(f.Path))
	for i, r := range f.Path {
		parts[i] = string(r)
	}
	return fmt.Sprintf("exists %s.%s in %v", strings.Join(parts, "."), f.Field, f.Values)
}
