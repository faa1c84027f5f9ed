package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func TestValidateRoleAssignments(t *testing.T) {
	cases := []struct {
		name     string
		role     entity.Role
		loc, pl  []int64
		wantCode string
	}{
		{"location manager sin ubicaciones", entity.RoleLocationManager, nil, nil, access.CodeMissingLocations},
		{"location manager con ubicación", entity.RoleLocationManager, []int64{7}, nil, ""},
		{"location manager con solo líneas", entity.RoleLocationManager, []int64{}, []int64{1}, access.CodeMissingLocations},
		{"product manager sin líneas", entity.RoleProductManager, []int64{1}, []int64{}, access.CodeMissingProductLines},
		{"product manager con línea", entity.RoleProductManager, nil, []int64{2}, ""},
		{"admin sin conjuntos", entity.RoleAdmin, []int64{}, []int64{}, ""},
		{"admin con conjuntos", entity.RoleAdmin, []int64{1}, []int64{1}, ""},
		{"customer", entity.RoleCustomer, nil, nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := access.ValidateRoleAssignments(tc.role, tc.loc, tc.pl)
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var ve *access.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.wantCode, ve.Code)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestResolveAssignments_UpdateParcialConservaAsignaciones(t *testing.T) {
	existing := access.Assignments{Role: entity.RoleLocationManager, LocationIDs: []int64{3, 1}}

	got := access.ResolveAssignments(existing, access.AssignmentPatch{})

	assert.Equal(t, entity.RoleLocationManager, got.Role)
	assert.Equal(t, []int64{1, 3}, got.LocationIDs)
	assert.NoError(t, got.Validate(), "un update sin cambios de asignación no debe rechazarse")
}

func TestResolveAssignments_ConjuntoVacioExplicitoSeRechaza(t *testing.T) {
	existing := access.Assignments{Role: entity.RoleProductManager, ProductLineIDs: []int64{4}}
	empty := []int64{}

	got := access.ResolveAssignments(existing, access.AssignmentPatch{ProductLineIDs: &empty})

	assert.ErrorIs(t, got.Validate(), access.ErrMissingProductLines)
}

func TestResolveAssignments_CambioDeRolUsaConjuntoExistente(t *testing.T) {
	role := entity.RoleLocationManager
	existing := access.Assignments{Role: entity.RoleAdmin}

	got := access.ResolveAssignments(existing, access.AssignmentPatch{Role: &role})
	assert.ErrorIs(t, got.Validate(), access.ErrMissingLocations)

	locs := []int64{2, 2, 5}
	got = access.ResolveAssignments(existing, access.AssignmentPatch{Role: &role, LocationIDs: &locs})
	require.NoError(t, got.Validate())
	assert.Equal(t, []int64{2, 5}, got.LocationIDs)
}

func TestResolveAssignments_LimpiaConjuntosQueNoAplican(t *testing.T) {
	role := entity.RoleAdmin
	existing := access.Assignments{Role: entity.RoleProductManager, ProductLineIDs: []int64{1}}

	got := access.ResolveAssignments(existing, access.AssignmentPatch{Role: &role})

	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.Empty(t, got.ProductLineIDs)
	assert.Empty(t, got.LocationIDs)
}

func TestAssignmentPatch_Touches(t *testing.T) {
	assert.False(t, access.AssignmentPatch{}.Touches())
	ids := []int64{}
	assert.True(t, access.AssignmentPatch{LocationIDs: &ids}.Touches())
}
