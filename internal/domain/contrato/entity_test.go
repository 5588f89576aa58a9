package contrato

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodoContiene(t *testing.T) {
	t.Run("open-ended period accepts any window after inicio", func(t *testing.T) {
		p := Periodo{FechaInicio: date(2026, 1, 1)}

		assert.True(t, p.Contiene(date(2026, 6, 1), date(2026, 6, 2)))
		assert.True(t, p.Contiene(date(2030, 1, 1), date(2030, 1, 2)))
	})

	t.Run("window starting before inicio is rejected", func(t *testing.T) {
		p := Periodo{FechaInicio: date(2026, 1, 1)}

		assert.False(t, p.Contiene(date(2025, 12, 31), date(2026, 1, 2)))
	})

	t.Run("bounded period rejects window ending after fin", func(t *testing.T) {
		fin := date(2026, 3, 31)
		p := Periodo{FechaInicio: date(2026, 1, 1), FechaFin: &fin}

		assert.True(t, p.Contiene(date(2026, 3, 30), date(2026, 3, 31)))
		assert.False(t, p.Contiene(date(2026, 3, 31), date(2026, 4, 1)))
	})

	t.Run("window touching both bounds is accepted", func(t *testing.T) {
		fin := date(2026, 3, 31)
		p := Periodo{FechaInicio: date(2026, 1, 1), FechaFin: &fin}

		assert.True(t, p.Contiene(date(2026, 1, 1), date(2026, 3, 31)))
	})
}

func TestContratoPeriodoValido(t *testing.T) {
	t.Run("contract period accepts the window directly", func(t *testing.T) {
		c := Contrato{
			ID:          1,
			FechaInicio: date(2026, 1, 1),
		}

		assert.True(t, c.PeriodoValido(date(2026, 5, 1), date(2026, 5, 2)))
	})

	t.Run("expired contract falls back to anexos", func(t *testing.T) {
		contratoFin := date(2026, 3, 31)
		anexoFin := date(2026, 9, 30)
		c := Contrato{
			ID:          1,
			FechaInicio: date(2026, 1, 1),
			FechaFin:    &contratoFin,
			Anexos: []Anexo{
				{ID: 10, ContratoID: 1, FechaInicio: date(2026, 4, 1), FechaFin: &anexoFin},
			},
		}

		assert.True(t, c.PeriodoValido(date(2026, 5, 1), date(2026, 5, 2)))
	})

	t.Run("window outside contract and all anexos is rejected", func(t *testing.T) {
		contratoFin := date(2026, 3, 31)
		anexoFin := date(2026, 9, 30)
		c := Contrato{
			ID:          1,
			FechaInicio: date(2026, 1, 1),
			FechaFin:    &contratoFin,
			Anexos: []Anexo{
				{ID: 10, ContratoID: 1, FechaInicio: date(2026, 4, 1), FechaFin: &anexoFin},
			},
		}

		assert.False(t, c.PeriodoValido(date(2026, 10, 1), date(2026, 10, 2)))
	})

	t.Run("window spanning two periods without containment is rejected", func(t *testing.T) {
		contratoFin := date(2026, 3, 31)
		c := Contrato{
			ID:          1,
			FechaInicio: date(2026, 1, 1),
			FechaFin:    &contratoFin,
			Anexos: []Anexo{
				{ID: 10, ContratoID: 1, FechaInicio: date(2026, 4, 1)},
			},
		}

		// Starts inside the contract, ends inside the anexo: no single
		// period contains it.
		assert.False(t, c.PeriodoValido(date(2026, 3, 31), date(2026, 4, 1)))
	})
}

func TestAnexoPorID(t *testing.T) {
	c := Contrato{
		ID: 1,
		Anexos: []Anexo{
			{ID: 10, ContratoID: 1},
			{ID: 11, ContratoID: 1},
		},
	}

	a := c.AnexoPorID(11)
	assert.NotNil(t, a)
	assert.Equal(t, int64(11), a.ID)

	assert.Nil(t, c.AnexoPorID(99))
}
