package contrato

import (
	"time"
)

// Contrato is the authority under which shifts are planned. Its validity
// window runs from FechaInicio to FechaFin; a nil FechaFin means the
// contract is open-ended.
type Contrato struct {
	ID          int64
	EmpleadoID  int64
	FechaInicio time.Time
	FechaFin    *time.Time
	Anexos      []Anexo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Anexo is a contract amendment with its own validity window, usable as
// an alternative authority period for a shift.
type Anexo struct {
	ID          int64
	ContratoID  int64
	FechaInicio time.Time
	FechaFin    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Periodo is a single validity window. FechaFin nil = indefinite.
type Periodo struct {
	FechaInicio time.Time
	FechaFin    *time.Time
}

// Contiene reports whether the window [inicio, fin] fits entirely inside
// the period. Containment is against one period, never a union of them.
func (p Periodo) Contiene(inicio, fin time.Time) bool {
	if inicio.Before(p.FechaInicio) {
		return false
	}
	if p.FechaFin == nil {
		return true
	}
	return !fin.After(*p.FechaFin)
}

// Periodo returns the contract's own validity window.
func (c Contrato) Periodo() Periodo {
	return Periodo{FechaInicio: c.FechaInicio, FechaFin: c.FechaFin}
}

// Periodo returns the amendment's validity window.
func (a Anexo) Periodo() Periodo {
	return Periodo{FechaInicio: a.FechaInicio, FechaFin: a.FechaFin}
}

// PeriodoValido reports whether [inicio, fin] fits inside the contract's
// window or inside any one of its amendments. The contract is checked
// first, then amendments, short-circuiting on the first match.
func (c Contrato) PeriodoValido(inicio, fin time.Time) bool {
	if c.Periodo().Contiene(inicio, fin) {
		return true
	}
	for _, anexo := range c.Anexos {
		if anexo.Periodo().Contiene(inicio, fin) {
			return true
		}
	}
	return false
}

// AnexoPorID returns the amendment with the given id, or nil.
func (c Contrato) AnexoPorID(id int64) *Anexo {
	for i := range c.Anexos {
		if c.Anexos[i].ID == id {
			return &c.Anexos[i]
		}
	}
	return nil
}
