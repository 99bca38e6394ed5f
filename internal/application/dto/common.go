package dto

// DateRangeQuery filtro opcional por fecha de negocio (YYYY-MM-DD), ambos extremos inclusivos.
type DateRangeQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
