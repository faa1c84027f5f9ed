package access

// CustomerScopeFilter filtro para listar clientes según la sesión.
//
//   - ADMIN: todos.
//   - CUSTOMER con perfil: solo su propio cliente.
//   - LOCATION_MANAGER: clientes cuya ubicación está asignada.
//   - PRODUCT_MANAGER: clientes con algún pedido que contenga un producto de sus líneas.
//   - Cualquier otra combinación: ninguno.
func CustomerScopeFilter(s Session) Filter {
	switch g := s.Grant().(type) {
	case AdminGrant:
		return MatchAll{}
	case CustomerGrant:
		return FieldIn{Field: FieldID, Values: []int64{g.CustomerID}}
	case LocationGrant:
		return FieldIn{Field: FieldLocationID, Values: g.Locations.Slice()}
	case ProductLineGrant:
		return ExistsRelated{
			Path:   []Relation{RelationOrders, RelationItems, RelationProduct},
			Field:  FieldProductLineID,
			Values: g.ProductLines.Slice(),
		}
	}
	return MatchNone{}
}

// OrderScopeFilter filtro para listar pedidos según la sesión. Misma estructura que
// CustomerScopeFilter pero evaluada directamente sobre el pedido.
func OrderScopeFilter(s Session) Filter {
	switch g := s.Grant().(type) {
	case AdminGrant:
		return MatchAll{}
	case CustomerGrant:
		return FieldIn{Field: FieldCustomerID, Values: []int64{g.CustomerID}}
	case LocationGrant:
		return ExistsRelated{
			Path:   []Relation{RelationCustomer},
			Field:  FieldLocationID,
			Values: g.Locations.Slice(),
		}
	case ProductLineGrant:
		return ExistsRelated{
			Path:   []Relation{RelationItems, RelationProduct},
			Field:  FieldProductLineID,
			Values: g.ProductLines.Slice(),
		}
	}
	return MatchNone{}
}
