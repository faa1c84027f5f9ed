package postgres

import (
	"testing"

	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScope(t *testing.T) {
	tests := []struct {
		name     string
		filter   access.Filter
		table    string
		alias    string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "todos",
			filter:  access.MatchAll{},
			table:   "customers",
			alias:   "c",
			wantSQL: "TRUE",
		},
		{
			name:    "ninguno",
			filter:  access.MatchNone{},
			table:   "orders",
			alias:   "o",
			wantSQL: "FALSE",
		},
		{
			name:     "clientes por ubicación",
			filter:   access.FieldIn{Field: access.FieldLocationID, Values: []int64{10, 20}},
			table:    "customers",
			alias:    "c",
			wantSQL:  "c.location_id = ANY($1)",
			wantArgs: []any{[]int64{10, 20}},
		},
		{
			name:    "lista vacía no coincide con nada",
			filter:  access.FieldIn{Field: access.FieldID, Values: nil},
			table:   "customers",
			alias:   "c",
			wantSQL: "FALSE",
		},
		{
			name: "clientes con pedidos de la línea",
			filter: access.ExistsRelated{
				Path:   []access.Relation{access.RelationOrders, access.RelationItems, access.RelationProduct},
				Field:  access.FieldProductLineID,
				Values: []int64{5},
			},
			table: "customers",
			alias: "c",
			wantSQL: "EXISTS (SELECT 1 FROM orders s1 JOIN order_items s2 ON s2.order_id = s1.id " +
				"JOIN products s3 ON s3.id = s2.product_id " +
				"WHERE s1.customer_id = c.id AND s3.product_line_id = ANY($1))",
			wantArgs: []any{[]int64{5}},
		},
		{
			name: "pedidos por ubicación del cliente",
			filter: access.ExistsRelated{
				Path:   []access.Relation{access.RelationCustomer},
				Field:  access.FieldLocationID,
				Values: []int64{10},
			},
			table:    "orders",
			alias:    "o",
			wantSQL:  "EXISTS (SELECT 1 FROM customers s1 WHERE s1.id = o.customer_id AND s1.location_id = ANY($1))",
			wantArgs: []any{[]int64{10}},
		},
		{
			name: "exists con lista vacía",
			filter: access.ExistsRelated{
				Path:  []access.Relation{access.RelationItems, access.RelationProduct},
				Field: access.FieldProductLineID,
			},
			table:   "orders",
			alias:   "o",
			wantSQL: "FALSE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := renderScope(tt.filter, tt.table, tt.alias, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRenderScope_PlaceholdersContinuanArgsPrevios(t *testing.T) {
	sql, args, err := renderScope(
		access.FieldIn{Field: access.FieldCustomerID, Values: []int64{7}},
		"orders", "o", []any{"x", 2},
	)
	require.NoError(t, err)
	assert.Equal(t, "o.customer_id = ANY($3)", sql)
	assert.Equal(t, []any{"x", 2, []int64{7}}, args)
}

func TestRenderScope_Errores(t *testing.T) {
	tests := []struct {
		name   string
		filter access.Filter
		table  string
	}{
		{"nil", nil, "customers"},
		{"columna no permitida", access.FieldIn{Field: access.FieldProductLineID, Values: []int64{1}}, "customers"},
		{"relación desconocida", access.ExistsRelated{Path: []access.Relation{access.RelationItems}, Field: access.FieldID, Values: []int64{1}}, "customers"},
		{"exists sin camino", access.ExistsRelated{Field: access.FieldID, Values: []int64{1}}, "orders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := renderScope(tt.filter, tt.table, "x", nil)
			assert.Error(t, err)
		})
	}
}

// Los filtros generados para cada rol deben poder traducirse siempre.
func TestRenderScope_FiltrosDeSesiones(t *testing.T) {
	customerID := int64(3)
	sessions := []access.SessionParams{
		{UserID: 1, Role: entity.RoleAdmin},
		{UserID: 2, Role: entity.RoleCustomer, CustomerID: &customerID},
		{UserID: 3, Role: entity.RoleCustomer},
		{UserID: 4, Role: entity.RoleLocationManager, LocationIDs: []int64{1, 2}},
		{UserID: 5, Role: entity.RoleLocationManager},
		{UserID: 6, Role: entity.RoleProductManager, ProductLineIDs: []int64{9}},
		{UserID: 7, Role: entity.Role("OTRO")},
	}
	for _, p := range sessions {
		s := access.NewSession(p)
		_, _, err := renderScope(access.CustomerScopeFilter(s), "customers", "c", nil)
		assert.NoError(t, err, "clientes, rol %s", p.Role)
		_, _, err = renderScope(access.OrderScopeFilter(s), "orders", "o", nil)
		assert.NoError(t, err, "pedidos, rol %s", p.Role)
	}
}
