package access

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// ViewOfOrder arma el OrderView a partir de un pedido cargado con sus ítems.
func ViewOfOrder(o *entity.Order) OrderView {
	lines := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, it.ProductLineID)
	}
	return OrderView{
		CustomerID:         o.CustomerID,
		CustomerLocationID: o.CustomerLocationID,
		ProductLineIDs:     lines,
	}
}

// ViewOfCustomer arma el CustomerView. orders son las vistas de los pedidos del cliente
// (puede ser vacío si no tiene pedidos).
func ViewOfCustomer(c *entity.Customer, orders []OrderView) CustomerView {
	if orders == nil {
		orders = []OrderView{}
	}
	return CustomerView{ID: c.ID, LocationID: c.LocationID, Orders: orders}
}
