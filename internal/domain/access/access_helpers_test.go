package access_test

import (
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func adminSession() access.Session {
	return access.NewSession(access.SessionParams{UserID: 1, Username: "admin", Role: entity.RoleAdmin})
}

func customerSession(customerID *int64) access.Session {
	return access.NewSession(access.SessionParams{
		UserID: 2, Username: "cliente", Role: entity.RoleCustomer, CustomerID: customerID,
	})
}

func locationManager(ids ...int64) access.Session {
	return access.NewSession(access.SessionParams{
		UserID: 3, Username: "lm", Role: entity.RoleLocationManager, LocationIDs: ids,
	})
}

func productManager(ids ...int64) access.Session {
	return access.NewSession(access.SessionParams{
		UserID: 4, Username: "pm", Role: entity.RoleProductManager, ProductLineIDs: ids,
	})
}
