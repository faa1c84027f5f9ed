package access

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// SessionParams datos con los que se construye una Session (login o token ya verificado).
type SessionParams struct {
	UserID         int64
	Username       string
	Role           entity.Role
	LocationIDs    []int64
	ProductLineIDs []int64
	CustomerID     *int64
}

// Session foto inmutable de la identidad de una petición: rol, alcance y cliente vinculado.
// Se construye una vez (login) y viaja firmada en el token; no se modifica nunca.
// Es segura para compartir entre goroutines: los conjuntos se copian al construir y al leer.
type Session struct {
	userID         int64
	username       string
	role           entity.Role
	locationIDs    IDSet
	productLineIDs IDSet
	customerID     int64
	hasCustomer    bool
}

// NewSession construye la sesión copiando los conjuntos de asignaciones.
func NewSession(p SessionParams) Session {
	s := Session{
		userID:         p.UserID,
		username:       p.Username,
		role:           p.Role,
		locationIDs:    NewIDSet(p.LocationIDs...),
		productLineIDs: NewIDSet(p.ProductLineIDs...),
	}
	if p.CustomerID != nil {
		s.customerID = *p.CustomerID
		s.hasCustomer = true
	}
	return s
}

// Accesores de solo lectura.
func (s Session) UserID() int64        { return s.userID }
func (s Session) Username() string     { return s.username }
func (s Session) Role() entity.Role    { return s.role }
func (s Session) IsAdmin() bool        { return s.role == entity.RoleAdmin }
func (s Session) LocationIDs() []int64 { return s.locationIDs.Slice() }

// ProductLineIDs copia de las líneas de producto asignadas.
func (s Session) ProductLineIDs() []int64 { return s.productLineIDs.Slice() }

// CustomerID perfil de cliente vinculado, si existe.
func (s Session) CustomerID() (int64, bool) { return s.customerID, s.hasCustomer }

// Params devuelve los datos planos de la sesión (para firmar el token o responder /me).
func (s Session) Params() SessionParams {
	p := SessionParams{
		UserID:         s.userID,
		Username:       s.username,
		Role:           s.role,
		LocationIDs:    s.locationIDs.Slice(),
		ProductLineIDs: s.productLineIDs.Slice(),
	}
	if s.hasCustomer {
		id := s.customerID
		p.CustomerID = &id
	}
	return p
}

// Grant proyecta la sesión plana en la variante de permiso de su rol.
// Un rol de manager sin asignaciones, un CUSTOMER sin perfil o un rol desconocido
// producen NoGrant: nunca se concede acceso por defecto.
func (s Session) Grant() Grant {
	switch s.role {
	case entity.RoleAdmin:
		return AdminGrant{}
	case entity.RoleLocationManager:
		if !s.locationIDs.Empty() {
			return LocationGrant{Locations: s.locationIDs}
		}
		return NoGrant{Reason: "location manager sin ubicaciones"}
	case entity.RoleProductManager:
		if !s.productLineIDs.Empty() {
			return ProductLineGrant{ProductLines: s.productLineIDs}
		}
		return NoGrant{Reason: "product manager sin líneas de producto"}
	case entity.RoleCustomer:
		if s.hasCustomer {
			return CustomerGrant{CustomerID: s.customerID}
		}
		return NoGrant{Reason: "cliente sin perfil vinculado"}
	}
	return NoGrant{Reason: "rol desconocido"}
}

// Grant variante cerrada del permiso de una sesión; una por rol más NoGrant.
type Grant interface {
	isGrant()
}

// AdminGrant acceso sin restricción.
type AdminGrant struct{}

// LocationGrant alcance por ubicación del cliente.
type LocationGrant struct {
	Locations IDSet
}

// ProductLineGrant alcance por línea de producto de los ítems de pedido.
type ProductLineGrant struct {
	ProductLines IDSet
}

// CustomerGrant alcance limitado al propio perfil de cliente.
type CustomerGrant struct {
	CustomerID int64
}

// NoGrant ningún registro es alcanzable.
type NoGrant struct {
	Reason string
}

func (AdminGrant) isGrant()       {}
func (LocationGrant) isGrant()    {}
func (ProductLineGrant) isGrant() {}
func (CustomerGrant) isGrant()    {}
func (NoGrant) isGrant()          {}
