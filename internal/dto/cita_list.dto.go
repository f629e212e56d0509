package dto

import "time"

type CitaServiceDTO struct {
	ServiceID uint    `json:"service_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"cantidad"`
	Price     float64 `json:"price"`
}

type CitaListDTO struct {
	ID            uint             `json:"id"`
	StartTime     time.Time        `json:"start_time"`
	EndTime       time.Time        `json:"end_time"`
	Status        string           `json:"status"`
	EmpleadoName  string           `json:"empleado_name"`
	ClienteName   string           `json:"cliente_name"`
	Services      []CitaServiceDTO `json:"services"`
	Total         float64          `json:"total"`
	PaymentStatus string           `json:"payment_status"`
}

type CitaStatsDTO struct {
	Desde    time.Time        `json:"desde"`
	Hasta    time.Time        `json:"hasta"`
	ByStatus map[string]int64 `json:"by_status"`
	Revenue  float64          `json:"revenue"`
}
