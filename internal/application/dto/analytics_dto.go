package dto

import "github.com/shopspring/decimal"

// RecordEventRequest ingesta de una interacción desde el sitio público.
type RecordEventRequest struct {
	Type string `json:"type"` // visitor, call_click, whatsapp_click, gallery_view, map_click
}

// DailyBreakdownDTO contadores por tipo de un día concreto (para graficar).
type DailyBreakdownDTO struct {
	Date   string           `json:"date"` // YYYY-MM-DD
	Counts map[string]int64 `json:"counts"`
}

// StatsResponse rollup de interacciones de un listado en la ventana pedida.
//
// TotalInteractions suma todos los tipos excepto visitor.
// EngagementRate = TotalInteractions / Visitors; 0 si no hubo visitas.
type StatsResponse struct {
	ListingID         string              `json:"listing_id"`
	Period            string              `json:"period"` // week, month, all
	Totals            map[string]int64    `json:"totals"`
	Visitors          int64               `json:"visitors"`
	TotalInteractions int64               `json:"total_interactions"`
	EngagementRate    decimal.Decimal     `json:"engagement_rate"`
	Breakdown         []DailyBreakdownDTO `json:"breakdown"`
}
