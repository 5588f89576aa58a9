package fichaje

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turnos-hq/horario-backend-go/internal/domain/horario"
)

type fakeHorarioRepo struct {
	horarios map[int64]horario.Horario
}

func newFakeHorarioRepo(horarios ...horario.Horario) *fakeHorarioRepo {
	r := &fakeHorarioRepo{horarios: make(map[int64]horario.Horario)}
	for _, h := range horarios {
		r.horarios[h.ID] = h
	}
	return r
}

func (r *fakeHorarioRepo) CreateBatch(ctx context.Context, hs []horario.Horario) ([]horario.Horario, error) {
	return hs, nil
}

func (r *fakeHorarioRepo) GetByID(ctx context.Context, id int64) (horario.Horario, error) {
	h, ok := r.horarios[id]
	if !ok {
		return horario.Horario{}, horario.ErrHorarioNotFound
	}
	return h, nil
}

func (r *fakeHorarioRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]horario.Horario, error) {
	out := make(map[int64]horario.Horario)
	for _, id := range ids {
		if h, ok := r.horarios[id]; ok {
			out[id] = h
		}
	}
	return out, nil
}

func (r *fakeHorarioRepo) GetForUpdate(ctx context.Context, id int64) (horario.Horario, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeHorarioRepo) UpdateFichaje(ctx context.Context, h horario.Horario) error {
	if _, ok := r.horarios[h.ID]; !ok {
		return horario.ErrHorarioNotFound
	}
	r.horarios[h.ID] = h
	return nil
}

func (r *fakeHorarioRepo) UpdatePlan(ctx context.Context, h horario.Horario) error {
	return r.UpdateFichaje(ctx, h)
}

func (r *fakeHorarioRepo) DeleteBatch(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(r.horarios, id)
	}
	return nil
}

func (r *fakeHorarioRepo) GetContiguousPairs(ctx context.Context, boundary time.Time) ([]horario.TransicionPar, error) {
	return nil, nil
}

func (r *fakeHorarioRepo) GetStale(ctx context.Context, limit time.Time) ([]horario.Horario, error) {
	return nil, nil
}

func testShift(id int64, estado horario.EstadoFichaje) horario.Horario {
	inicio := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	return horario.Horario{
		ID:            id,
		EmpleadoID:    7,
		HorarioInicio: inicio,
		HorarioFin:    inicio.Add(8 * time.Hour),
		EstadoFichaje: estado,
	}
}

func TestIniciar(t *testing.T) {
	ctx := context.Background()

	t.Run("records entrada and moves to en_curso", func(t *testing.T) {
		repo := newFakeHorarioRepo(testShift(1, horario.EstadoSinIniciar))
		svc := NewFichajeService(repo)

		h := repo.horarios[1]
		lat, lng := 40.4168, -3.7038
		ip, ua := "10.0.0.1", "Mozilla/5.0"
		err := svc.Iniciar(ctx, &h, horario.ContextoFichaje{
			Latitud: &lat, Longitud: &lng, IPAddress: &ip, UserAgent: &ua,
		})
		require.NoError(t, err)

		stored := repo.horarios[1]
		assert.Equal(t, horario.EstadoEnCurso, stored.EstadoFichaje)
		require.NotNil(t, stored.FichajeEntrada)
		assert.Equal(t, &lat, stored.LatitudEntrada)
		assert.Equal(t, &ip, stored.IPAddressEntrada)
		assert.Nil(t, stored.FichajeSalida)
	})

	t.Run("marca overrides the event timestamp", func(t *testing.T) {
		repo := newFakeHorarioRepo(testShift(1, horario.EstadoSinIniciar))
		svc := NewFichajeService(repo)

		h := repo.horarios[1]
		marca := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
		err := svc.Iniciar(ctx, &h, horario.ContextoFichaje{Marca: &marca, TransicionAutomatica: true})
		require.NoError(t, err)

		assert.True(t, repo.horarios[1].FichajeEntrada.Equal(marca))
	})

	t.Run("rejected when already en_curso", func(t *testing.T) {
		repo := newFakeHorarioRepo(testShift(1, horario.EstadoEnCurso))
		svc := NewFichajeService(repo)

		h := repo.horarios[1]
		err := svc.Iniciar(ctx, &h, horario.ContextoFichaje{})
		assert.ErrorIs(t, err, horario.ErrFichajeYaIniciado)
	})

	t.Run("rejected when finalizado", func(t *testing.T) {
		repo := newFakeHorarioRepo(testShift(1, horario.EstadoFinalizado))
		svc := NewFichajeService(repo)

		h := repo.horarios[1]
		err := svc.Iniciar(ctx, &h, horario.ContextoFichaje{})
		assert.ErrorIs(t, err, horario.ErrFichajeYaFinalizado)
	})
}

func TestFinalizar(t *testing.T) {
	ctx := context.Background()

	t.Run("records salida and moves to finalizado", func(t *testing.T) {
		repo := newFakeHorarioRepo(testShift(1, horario.EstadoEnCurso))
		svc := NewFichajeService(repo)

		h := repo.horarios[1]
		err := svc.Finalizar(ctx, &h, horario.ContextoFichaje{})
		require.NoError(t, err)

		stored := repo.horarios[1]
		assert.Equal(t, horario.EstadoFinalizado, stored.EstadoFichaje)
		require.NotNil(t, stored.FichajeSalida)
	})

	t.Run("rejected before iniciar", func(t *testing.T) {
		repo := newFakeHorarioRepo(testShift(1, horario.EstadoSinIniciar))
		svc := NewFichajeService(repo)

		h := repo.horarios[1]
		err := svc.Finalizar(ctx, &h, horario.ContextoFichaje{})
		assert.ErrorIs(t, err, horario.ErrFichajeNoIniciado)
	})

	t.Run("rejected when already finalizado", func(t *testing.T) {
		repo := newFakeHorarioRepo(testShift(1, horario.EstadoFinalizado))
		svc := NewFichajeService(repo)

		h := repo.horarios[1]
		err := svc.Finalizar(ctx, &h, horario.ContextoFichaje{})
		assert.ErrorIs(t, err, horario.ErrFichajeYaFinalizado)
	})
}

func TestEstadoOnlyMovesForward(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHorarioRepo(testShift(1, horario.EstadoSinIniciar))
	svc := NewFichajeService(repo)

	h := repo.horarios[1]
	require.NoError(t, svc.Iniciar(ctx, &h, horario.ContextoFichaje{}))
	require.NoError(t, svc.Finalizar(ctx, &h, horario.ContextoFichaje{}))

	// No way back from finalizado.
	assert.ErrorIs(t, svc.Iniciar(ctx, &h, horario.ContextoFichaje{}), horario.ErrFichajeYaFinalizado)
	assert.ErrorIs(t, svc.Finalizar(ctx, &h, horario.ContextoFichaje{}), horario.ErrFichajeYaFinalizado)
}
