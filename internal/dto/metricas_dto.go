package dto

type ResumenProductosResponse struct {
	Total     int64            `json:"total"`
	Activos   int64            `json:"active"`
	Inactivos int64            `json:"inactive"`
	PorTipo   map[string]int64 `json:"by_drink_type"`
}

type EscaneosDiaResponse struct {
	Fecha    string `json:"date"`
	Cantidad int64  `json:"count"`
}

type CodigoEscaneadoResponse struct {
	CodigoPublico string `json:"public_code"`
	Cantidad      int64  `json:"count"`
}

type MetricasResponse struct {
	Productos           ResumenProductosResponse  `json:"products"`
	PromocionesVigentes int64                     `json:"active_promotions"`
	EscaneosPorDia      []EscaneosDiaResponse     `json:"scans_by_day"`
	MasEscaneados       []CodigoEscaneadoResponse `json:"top_scanned"`
}
