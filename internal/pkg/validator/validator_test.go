package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana@empresa.com"))
	assert.True(t, IsValidEmail("ana.garcia+hr@empresa.co"))
	assert.False(t, IsValidEmail("ana@empresa"))
	assert.False(t, IsValidEmail("no-an-email"))
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2026-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-01-15T10:30:00+02:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-01-15 10:30:00")
	assert.False(t, ok)

	_, ok = IsValidDateTime("2026-01-15")
	assert.False(t, ok)
}

func TestCoordinates(t *testing.T) {
	assert.True(t, IsValidLatitude(40.4168))
	assert.False(t, IsValidLatitude(91))
	assert.True(t, IsValidLongitude(-3.7038))
	assert.False(t, IsValidLongitude(-181))
}

func TestIndexedField(t *testing.T) {
	assert.Equal(t, "horarios.3.contrato_id", IndexedField("horarios", 3, "contrato_id"))
	assert.Equal(t, "horarios.0.id", IndexedField("horarios", 0, "id"))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "horarios.0.contrato_id", Message: "contrato does not exist"},
		{Field: "horarios.2.horario_fin", Message: "horario_fin must be after horario_inicio"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "contrato does not exist", m["horarios.0.contrato_id"])
	assert.Contains(t, errs.Error(), "horarios.2.horario_fin")
}
