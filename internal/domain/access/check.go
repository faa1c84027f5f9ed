package access

// OrderView datos mínimos de un pedido para decidir acceso.
// ProductLineIDs contiene la línea del producto de cada ítem.
type OrderView struct {
	CustomerID         int64
	CustomerLocationID int64
	ProductLineIDs     []int64
}

// CustomerView datos mínimos de un cliente para decidir acceso.
// Orders es nil si los pedidos no se cargaron; un PRODUCT_MANAGER necesita que el
// llamador los incluya, y sin ellos se deniega.
type CustomerView struct {
	ID         int64
	LocationID int64
	Orders     []OrderView
}

// CanAccessCustomer decide si la sesión puede leer o modificar el cliente ya cargado.
func CanAccessCustomer(s Session, c CustomerView) bool {
	switch g := s.Grant().(type) {
	case AdminGrant:
		return true
	case CustomerGrant:
		return c.ID == g.CustomerID
	case LocationGrant:
		return g.Locations.Contains(c.LocationID)
	case ProductLineGrant:
		for _, o := range c.Orders {
			if g.ProductLines.ContainsAny(o.ProductLineIDs) {
				return true
			}
		}
		return false
	}
	return false
}

// CanAccessOrder decide si la sesión puede leer o modificar el pedido ya cargado.
func CanAccessOrder(s Session, o OrderView) bool {
	switch g := s.Grant().(type) {
	case AdminGrant:
		return true
	case CustomerGrant:
		return o.CustomerID == g.CustomerID
	case LocationGrant:
		return g.Locations.Contains(o.CustomerLocationID)
	case ProductLineGrant:
		return g.ProductLines.ContainsAny(o.ProductLineIDs)
	}
	return false
}
