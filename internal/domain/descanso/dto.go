package descanso

import "time"

type DescansoResponse struct {
	ID        int64   `json:"id"`
	HorarioID int64   `json:"horario_id"`
	Inicio    string  `json:"inicio"`
	Fin       *string `json:"fin,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func NewDescansoResponse(d Descanso) DescansoResponse {
	resp := DescansoResponse{
		ID:        d.ID,
		HorarioID: d.HorarioID,
		Inicio:    d.Inicio.Format(time.RFC3339),
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
	}
	if d.Fin != nil {
		fin := d.Fin.Format(time.RFC3339)
		resp.Fin = &fin
	}
	return resp
}
