package access

import (
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Códigos de error de validación de asignaciones.
const (
	CodeMissingLocations    = "missing-locations"
	CodeMissingProductLines = "missing-product-lines"
)

// ValidationError rechazo del validador de roles. errors.Is(err, domain.ErrInvalidInput) es true.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite tratar el error como domain.ErrInvalidInput en capas superiores.
func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

var (
	ErrMissingLocations = &ValidationError{
		Code:    CodeMissingLocations,
		Message: "se requiere al menos una ubicación para un location manager",
	}
	ErrMissingProductLines = &ValidationError{
		Code:    CodeMissingProductLines,
		Message: "se requiere al menos una línea de producto para un product manager",
	}
)

// ValidateRoleAssignments verifica los invariantes estructurales del rol:
// LOCATION_MANAGER con al menos una ubicación y PRODUCT_MANAGER con al menos una línea.
// Para ADMIN y CUSTOMER los conjuntos se ignoran.
func ValidateRoleAssignments(role entity.Role, locationIDs, productLineIDs []int64) error {
	switch role {
	case entity.RoleLocationManager:
		if len(locationIDs) == 0 {
			return ErrMissingLocations
		}
	case entity.RoleProductManager:
		if len(productLineIDs) == 0 {
			return ErrMissingProductLines
		}
	}
	return nil
}

// Assignments estado (rol + asignaciones) de un usuario.
type Assignments struct {
	Role           entity.Role
	LocationIDs    []int64
	ProductLineIDs []int64
}

// AssignmentPatch cambios pedidos en una actualización; nil significa "no se envió".
type AssignmentPatch struct {
	Role           *entity.Role
	LocationIDs    *[]int64
	ProductLineIDs *[]int64
}

// Touches indica si el patch cambia rol o asignaciones.
func (p AssignmentPatch) Touches() bool {
	return p.Role != nil || p.LocationIDs != nil || p.ProductLineIDs != nil
}

// ResolveAssignments calcula el estado efectivo propuesto: rol nuevo si se envió, si no el existente;
// cada conjunto nuevo si se envió, si no el existente. Los conjuntos que no aplican al rol
// efectivo quedan vacíos y los IDs se deduplican.
func ResolveAssignments(existing Assignments, patch AssignmentPatch) Assignments {
	out := Assignments{
		Role:           existing.Role,
		LocationIDs:    existing.LocationIDs,
		ProductLineIDs: existing.ProductLineIDs,
	}
	if patch.Role != nil {
		out.Role = *patch.Role
	}
	if patch.LocationIDs != nil {
		out.LocationIDs = *patch.LocationIDs
	}
	if patch.ProductLineIDs != nil {
		out.ProductLineIDs = *patch.ProductLineIDs
	}
	return Normalize(out)
}

// Normalize deja solo el conjunto que aplica al rol, sin duplicados.
func Normalize(a Assignments) Assignments {
	out := Assignments{Role: a.Role, LocationIDs: []int64{}, ProductLineIDs: []int64{}}
	switch a.Role {
	case entity.RoleLocationManager:
		out.LocationIDs = NewIDSet(a.LocationIDs...).Slice()
	case entity.RoleProductManager:
		out.ProductLineIDs = NewIDSet(a.ProductLineIDs...).Slice()
	}
	return out
}

// Validate aplica ValidateRoleAssignments al estado.
func (a Assignments) Validate() error {
	return ValidateRoleAssignments(a.Role, a.LocationIDs, a.ProductLineIDs)
}
