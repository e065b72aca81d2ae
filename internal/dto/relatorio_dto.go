package dto

import "github.com/shopspring/decimal"

// RelatorioFilter bounds dashboard aggregates to a date window.
type RelatorioFilter struct {
	DataInicio string `form:"data_inicio"` // YYYY-MM-DD; empty = 30 days ago
	DataFim    string `form:"data_fim"`    // YYYY-MM-DD; empty = today
}

// VendasPorDia is one dashboard bar: total sold on a given day.
type VendasPorDia struct {
	Data       string          `json:"data"`
	Quantidade int             `json:"quantidade"`
	Total      decimal.Decimal `json:"total"`
}

type RelatorioVendasResponse struct {
	Dias       []VendasPorDia  `json:"dias"`
	TotalGeral decimal.Decimal `json:"total_geral"`
}

// PagamentosPorMetodo is one dashboard slice: total received per payment method.
type PagamentosPorMetodo struct {
	Metodo string          `json:"metodo"`
	Total  decimal.Decimal `json:"total"`
}

type RelatorioPagamentosResponse struct {
	Metodos    []PagamentosPorMetodo `json:"metodos"`
	TotalGeral decimal.Decimal       `json:"total_geral"`
}
