package horario

import (
	"time"
)

// EstadoFichaje is the clock state of a shift. It only ever moves
// forward: sin_iniciar -> en_curso -> finalizado.
type EstadoFichaje string

const (
	EstadoSinIniciar EstadoFichaje = "sin_iniciar"
	EstadoEnCurso    EstadoFichaje = "en_curso"
	EstadoFinalizado EstadoFichaje = "finalizado"
)

// Horario is a planned work shift together with its actual clock data.
// Exactly one of ContratoID / AnexoID owns the shift.
type Horario struct {
	ID              int64
	EmpleadoID      int64
	ContratoID      *int64
	AnexoID         *int64
	ModalidadID     int64
	EstadoHorarioID int64
	TurnoID         int64

	HorarioInicio  time.Time
	HorarioFin     time.Time
	DescansoInicio *time.Time
	DescansoFin    *time.Time

	EstadoFichaje EstadoFichaje

	// Clock data. The *Automatica flags record whether the event was
	// stamped by the automatic transition rather than a manual fichaje.
	FichajeEntrada    *time.Time
	FichajeSalida     *time.Time
	EntradaAutomatica bool
	SalidaAutomatica  bool

	LatitudEntrada   *float64
	LongitudEntrada  *float64
	IPAddressEntrada *string
	UserAgentEntrada *string

	LatitudSalida   *float64
	LongitudSalida  *float64
	IPAddressSalida *string
	UserAgentSalida *string

	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ContextoFichaje carries the optional metadata of a single clock event.
// Marca overrides the event timestamp; it is only set by the automatic
// transition, which stamps both shifts with the shared boundary instant.
type ContextoFichaje struct {
	Latitud              *float64
	Longitud             *float64
	IPAddress            *string
	UserAgent            *string
	Marca                *time.Time
	TransicionAutomatica bool
}

// TransicionPar identifies a contiguous shift pair due for an automatic
// transition: Actual ends exactly where Siguiente starts, same employee.
type TransicionPar struct {
	ActualID    int64
	SiguienteID int64
}
