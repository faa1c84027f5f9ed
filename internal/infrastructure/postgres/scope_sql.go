package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain/access"
)

// relationDef salto desde una tabla hacia la tabla relacionada.
// cond usa %[1]s para el alias del hijo y %[2]s para el alias del padre.
type relationDef struct {
	table string
	cond  string
}

type relationKey struct {
	table    string
	relation access.Relation
}

var relations = map[relationKey]relationDef{
	{"customers", access.RelationOrders}:    {table: "orders", cond: "%[1]s.customer_id = %[2]s.id"},
	{"orders", access.RelationItems}:        {table: "order_items", cond: "%[1]s.order_id = %[2]s.id"},
	{"orders", access.RelationCustomer}:     {table: "customers", cond: "%[1]s.id = %[2]s.customer_id"},
	{"order_items", access.RelationProduct}: {table: "products", cond: "%[1]s.id = %[2]s.product_id"},
}

// Columnas filtrables por tabla; cualquier otra se rechaza.
var scopeColumns = map[string]map[access.Field]bool{
	"customers":   {access.FieldID: true, access.FieldLocationID: true},
	"orders":      {access.FieldID: true, access.FieldCustomerID: true},
	"order_items": {access.FieldID: true},
	"products":    {access.FieldID: true, access.FieldProductLineID: true},
}

// scopeRenderer traduce un access.Filter a un predicado SQL con placeholders posicionales.
// Los argumentos se acumulan en args, así que el predicado puede combinarse con otros
// parámetros de la misma consulta.
type scopeRenderer struct {
	args  []any
	alias int
}

// renderScope devuelve el predicado para la tabla table (con alias alias) y los argumentos,
// agregados a continuación de args.
func renderScope(f access.Filter, table, alias string, args []any) (string, []any, error) {
	r := &scopeRenderer{args: args}
	sql, err := r.render(f, table, alias)
	if err != nil {
		return "", nil, err
	}
	return sql, r.args, nil
}

func (r *scopeRenderer) render(f access.Filter, table, alias string) (string, error) {
	switch v := f.(type) {
	case access.MatchAll:
		return "TRUE", nil
	case access.MatchNone:
		return "FALSE", nil
	case access.FieldIn:
		return r.fieldIn(table, alias, v.Field, v.Values)
	case access.ExistsRelated:
		return r.exists(table, alias, v)
	case nil:
		return "", fmt.Errorf("filtro de alcance nil")
	}
	return "", fmt.Errorf("filtro de alcance no soportado: %T", f)
}

func (r *scopeRenderer) fieldIn(table, alias string, field access.Field, values []int64) (string, error) {
	if !scopeColumns[table][field] {
		return "", fmt.Errorf("columna %q no filtrable en %s", field, table)
	}
	if len(values) == 0 {
		return "FALSE", nil
	}
	r.args = append(r.args, values)
	return fmt.Sprintf("%s.%s = ANY($%d)", alias, field, len(r.args)), nil
}

func (r *scopeRenderer) exists(table, alias string, f access.ExistsRelated) (string, error) {
	if len(f.Path) == 0 {
		return "", fmt.Errorf("exists sin relaciones")
	}

	var from, where []string
	parentTable, parentAlias := table, alias
	for i, rel := range f.Path {
		def, ok := relations[relationKey{parentTable, rel}]
		if !ok {
			return "", fmt.Errorf("relación %q no definida desde %s", rel, parentTable)
		}
		r.alias++
		child := fmt.Sprintf("s%d", r.alias)
		cond := fmt.Sprintf(def.cond, child, parentAlias)
		if i == 0 {
			from = append(from, def.table+" "+child)
			where = append(where, cond)
		} else {
			from = append(from, fmt.Sprintf("JOIN %s %s ON %s", def.table, child, cond))
		}
		parentTable, parentAlias = def.table, child
	}

	pred, err := r.fieldIn(parentTable, parentAlias, f.Field, f.Values)
	if err != nil {
		return "", err
	}
	if pred == "FALSE" {
		return pred, nil
	}
	where = append(where, pred)
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s)",
		strings.Join(from, " "), strings.Join(where, " AND ")), nil
}
