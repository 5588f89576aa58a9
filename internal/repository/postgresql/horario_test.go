package postgresql

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
)

// fakeRows serves pre-built horarios in scan order and reports err
// once the rows are exhausted, the way pgx surfaces a connection
// failure mid-iteration.
type fakeRows struct {
	horarios []horario.Horario
	idx      int
	err      error
	closed   bool
}

func (r *fakeRows) Next() bool {
	if r.idx < len(r.horarios) {
		r.idx++
		return true
	}
	return false
}

func (r *fakeRows) Scan(dest ...any) error {
	h := r.horarios[r.idx-1]
	src := []any{
		h.ID, h.EmpleadoID, h.ContratoID, h.AnexoID, h.ModalidadID, h.EstadoHorarioID, h.TurnoID,
		h.HorarioInicio, h.HorarioFin, h.DescansoInicio, h.DescansoFin,
		h.EstadoFichaje, h.FichajeEntrada, h.FichajeSalida, h.EntradaAutomatica, h.SalidaAutomatica,
		h.LatitudEntrada, h.LongitudEntrada, h.IPAddressEntrada, h.UserAgentEntrada,
		h.LatitudSalida, h.LongitudSalida, h.IPAddressSalida, h.UserAgentSalida,
		h.Observaciones, h.CreatedAt, h.UpdatedAt,
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(src[i]))
	}
	return nil
}

func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func TestCollectHorarios(t *testing.T) {
	shift := func(id int64) horario.Horario {
		return horario.Horario{
			ID:            id,
			EmpleadoID:    7,
			HorarioInicio: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
			HorarioFin:    time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC),
			EstadoFichaje: horario.EstadoSinIniciar,
		}
	}

	t.Run("drains every row and closes", func(t *testing.T) {
		rows := &fakeRows{horarios: []horario.Horario{shift(1), shift(2)}}

		horarios, err := collectHorarios(rows)
		require.NoError(t, err)
		require.Len(t, horarios, 2)
		assert.Equal(t, int64(1), horarios[0].ID)
		assert.Equal(t, int64(2), horarios[1].ID)
		assert.True(t, rows.closed)
	})

	t.Run("connection failure mid-iteration is an error, not a short result", func(t *testing.T) {
		rows := &fakeRows{
			horarios: []horario.Horario{shift(1)},
			err:      errors.New("connection reset"),
		}

		horarios, err := collectHorarios(rows)
		require.Error(t, err)
		assert.Nil(t, horarios)
		assert.True(t, rows.closed)
	})
}
