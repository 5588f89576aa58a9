package horario

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turnos-hq/horario-backend-go/internal/pkg/validator"
)

func ptrI64(v int64) *int64 { return &v }

func ptrStr(v string) *string { return &v }

func ptrF64(v float64) *float64 { return &v }

func validItem() CrearHorarioItem {
	return CrearHorarioItem{
		EmpleadoID:      7,
		ContratoID:      ptrI64(1),
		ModalidadID:     1,
		EstadoHorarioID: 1,
		TurnoID:         1,
		HorarioInicio:   "2026-06-01T09:00:00Z",
		HorarioFin:      "2026-06-01T17:00:00Z",
	}
}

func TestCrearLoteRequestValidate(t *testing.T) {
	t.Run("valid batch passes", func(t *testing.T) {
		req := CrearLoteRequest{Horarios: []CrearHorarioItem{validItem(), validItem()}}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		req := CrearLoteRequest{}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "horarios", errs[0].Field)
	})

	t.Run("errors carry the batch index and validation continues past failures", func(t *testing.T) {
		bad := validItem()
		bad.HorarioFin = "2026-06-01T08:00:00Z" // before inicio

		alsoBad := validItem()
		alsoBad.ContratoID = nil // no authority at all

		req := CrearLoteRequest{Horarios: []CrearHorarioItem{validItem(), bad, alsoBad}}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)

		m := errs.ToMap()
		assert.Contains(t, m, "horarios.1.horario_fin")
		assert.Contains(t, m, "horarios.2.contrato_id")
		for field := range m {
			assert.False(t, strings.HasPrefix(field, "horarios.0."), "item 0 was valid, got error on %s", field)
		}
	})

	t.Run("contrato_id and anexo_id are mutually exclusive", func(t *testing.T) {
		item := validItem()
		item.AnexoID = ptrI64(2)

		req := CrearLoteRequest{Horarios: []CrearHorarioItem{item}}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "horarios.0.contrato_id")
	})

	t.Run("planned descanso must come as a pair", func(t *testing.T) {
		item := validItem()
		item.DescansoInicio = ptrStr("2026-06-01T13:00:00Z")

		req := CrearLoteRequest{Horarios: []CrearHorarioItem{item}}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "horarios.0.descanso_inicio")
	})

	t.Run("planned descanso must nest inside the window", func(t *testing.T) {
		item := validItem()
		item.DescansoInicio = ptrStr("2026-06-01T16:00:00Z")
		item.DescansoFin = ptrStr("2026-06-01T18:00:00Z") // past horario_fin

		req := CrearLoteRequest{Horarios: []CrearHorarioItem{item}}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "horarios.0.descanso_inicio")
	})

	t.Run("nested descanso passes", func(t *testing.T) {
		item := validItem()
		item.DescansoInicio = ptrStr("2026-06-01T13:00:00Z")
		item.DescansoFin = ptrStr("2026-06-01T13:30:00Z")

		req := CrearLoteRequest{Horarios: []CrearHorarioItem{item}}
		assert.NoError(t, req.Validate())
	})
}

func TestActualizarLoteRequestValidate(t *testing.T) {
	t.Run("missing id is reported per item", func(t *testing.T) {
		req := ActualizarLoteRequest{Horarios: []ActualizarHorarioItem{
			{ID: 5, Observaciones: ptrStr("turno cambiado")},
			{ID: 0},
		}}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "horarios.1.id")
	})

	t.Run("malformed timestamps are rejected", func(t *testing.T) {
		req := ActualizarLoteRequest{Horarios: []ActualizarHorarioItem{
			{ID: 5, HorarioInicio: ptrStr("not-a-date")},
		}}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "horarios.0.horario_inicio")
	})
}

func TestEliminarLoteRequestValidate(t *testing.T) {
	assert.Error(t, (&EliminarLoteRequest{}).Validate())
	assert.Error(t, (&EliminarLoteRequest{IDs: []int64{1, -2}}).Validate())
	assert.NoError(t, (&EliminarLoteRequest{IDs: []int64{1, 2}}).Validate())
}

func TestFichajeRequestValidate(t *testing.T) {
	t.Run("empty body is fine", func(t *testing.T) {
		assert.NoError(t, (&FichajeRequest{}).Validate())
	})

	t.Run("coordinates must come together", func(t *testing.T) {
		req := FichajeRequest{Latitud: ptrF64(40.4)}
		assert.Error(t, req.Validate())
	})

	t.Run("coordinates must be in range", func(t *testing.T) {
		req := FichajeRequest{Latitud: ptrF64(95), Longitud: ptrF64(2)}
		assert.Error(t, req.Validate())
	})

	t.Run("valid pair passes", func(t *testing.T) {
		req := FichajeRequest{Latitud: ptrF64(40.4168), Longitud: ptrF64(-3.7038)}
		assert.NoError(t, req.Validate())
	})
}
