package repository

import (
	"context"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RelatorioRepository runs the dashboard aggregates straight in SQL; the
// service layer only shapes the results.
type RelatorioRepository interface {
	VendasPorDia(ctx context.Context, inicio, fim string) ([]dto.VendasPorDia, error)
	PagamentosPorMetodo(ctx context.Context, inicio, fim, tipo string) (map[string]decimal.Decimal, error)
}

type relatorioRepo struct{ db *gorm.DB }

func NewRelatorioRepository(db *gorm.DB) RelatorioRepository { return &relatorioRepo{db: db} }

func (r *relatorioRepo) VendasPorDia(ctx context.Context, inicio, fim string) ([]dto.VendasPorDia, error) {
	type linha struct {
		Data       string
		Quantidade int
		Total      decimal.Decimal
	}
	var linhas []linha
	err := r.db.WithContext(ctx).Model(&model.Operacao{}).
		Select("DATE(created_at)::text AS data, COUNT(*) AS quantidade, SUM(total) AS total").
		Where("tipo = ? AND estado = ?", model.TipoVenda, model.EstadoOperacaoRegistrada).
		Where("DATE(created_at) BETWEEN ? AND ?", inicio, fim).
		Group("DATE(created_at)").
		Order("data ASC").
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	dias := make([]dto.VendasPorDia, 0, len(linhas))
	for _, l := range linhas {
		dias = append(dias, dto.VendasPorDia{Data: l.Data, Quantidade: l.Quantidade, Total: l.Total})
	}
	return dias, nil
}

func (r *relatorioRepo) PagamentosPorMetodo(ctx context.Context, inicio, fim, tipo string) (map[string]decimal.Decimal, error) {
	type linha struct {
		Metodo string
		Total  decimal.Decimal
	}
	var linhas []linha
	err := r.db.WithContext(ctx).Model(&model.OperacaoPagamento{}).
		Select("operacao_pagamentos.metodo AS metodo, SUM(operacao_pagamentos.valor) AS total").
		Joins("JOIN operacoes ON operacoes.id = operacao_pagamentos.operacao_id").
		Where("operacoes.tipo = ? AND operacoes.estado = ?", tipo, model.EstadoOperacaoRegistrada).
		Where("DATE(operacoes.created_at) BETWEEN ? AND ?", inicio, fim).
		Group("operacao_pagamentos.metodo").
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	totais := make(map[string]decimal.Decimal, len(linhas))
	for _, l := range linhas {
		totais[l.Metodo] = l.Total
	}
	return totais, nil
}
