package service

import (
	"context"
	"time"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"

	"github.com/shopspring/decimal"
)

type RelatorioService interface {
	VendasPorDia(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioVendasResponse, error)
	PagamentosPorMetodo(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioPagamentosResponse, error)
}

type relatorioService struct {
	repo repository.RelatorioRepository
}

func NewRelatorioService(repo repository.RelatorioRepository) RelatorioService {
	return &relatorioService{repo: repo}
}

// janela resolves the date window, defaulting to the last 30 days.
func janela(filter dto.RelatorioFilter) (string, string) {
	inicio := filter.DataInicio
	fim := filter.DataFim
	if fim == "" {
		fim = time.Now().Format("2006-01-02")
	}
	if inicio == "" {
		inicio = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	return inicio, fim
}

func (s *relatorioService) VendasPorDia(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioVendasResponse, error) {
	inicio, fim := janela(filter)
	dias, err := s.repo.VendasPorDia(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	resp := &dto.RelatorioVendasResponse{Dias: dias, TotalGeral: decimal.Zero}
	for _, d := range dias {
		resp.TotalGeral = resp.TotalGeral.Add(d.Total)
	}
	return resp, nil
}

func (s *relatorioService) PagamentosPorMetodo(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioPagamentosResponse, error) {
	inicio, fim := janela(filter)
	totais, err := s.repo.PagamentosPorMetodo(ctx, inicio, fim, model.TipoVenda)
	if err != nil {
		return nil, err
	}
	resp := &dto.RelatorioPagamentosResponse{
		Metodos:    make([]dto.PagamentosPorMetodo, 0, len(totais)),
		TotalGeral: decimal.Zero,
	}
	for _, metodo := range []string{
		model.MetodoDinheiro, model.MetodoCartaoCredito, model.MetodoCartaoDebito,
		model.MetodoPix, model.MetodoBoleto, model.MetodoBonus,
	} {
		total, ok := totais[metodo]
		if !ok {
			continue
		}
		resp.Metodos = append(resp.Metodos, dto.PagamentosPorMetodo{Metodo: metodo, Total: total})
		resp.TotalGeral = resp.TotalGeral.Add(total)
	}
	return resp, nil
}
