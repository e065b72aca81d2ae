package service_test

import (
	"context"
	"testing"

	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcederBonus(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)
	cliente := seedCliente(repo, "Carla Mendes", 25)

	resp, err := svc.ConcederBonus(context.Background(), cliente.ID, dto.ConcederBonusRequest{
		Valor:     d(75),
		Descricao: "Campanha de fidelidade",
	})
	require.NoError(t, err)

	assert.Equal(t, "100", resp.SaldoBonus.String())
	require.Len(t, repo.movimentos, 1)
	assert.Equal(t, "credito", repo.movimentos[0].Tipo)
	assert.Equal(t, "75", repo.movimentos[0].Valor.String())
}

func TestConcederBonus_ValorInvalido(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)
	cliente := seedCliente(repo, "Rafael Nunes", 0)

	_, err := svc.ConcederBonus(context.Background(), cliente.ID, dto.ConcederBonusRequest{
		Valor: decimal.Zero, Descricao: "nada",
	})
	assert.ErrorIs(t, err, service.ErrValorInvalido)

	_, err = svc.ConcederBonus(context.Background(), cliente.ID, dto.ConcederBonusRequest{
		Valor: d(-10), Descricao: "negativo",
	})
	assert.ErrorIs(t, err, service.ErrValorInvalido)
	assert.Empty(t, repo.movimentos)
}

func TestListarMovimentosBonus(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)
	cliente := seedCliente(repo, "Bruno Alves", 0)

	for _, valor := range []float64{10, 20} {
		_, err := svc.ConcederBonus(context.Background(), cliente.ID, dto.ConcederBonusRequest{
			Valor: d(valor), Descricao: "Crédito",
		})
		require.NoError(t, err)
	}

	movs, err := svc.ListarMovimentosBonus(context.Background(), cliente.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	assert.Equal(t, "30", cliente.SaldoBonus.String())
}

func TestDesativarCliente(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)
	cliente := seedCliente(repo, "Lia Prado", 0)

	require.NoError(t, svc.Desativar(context.Background(), cliente.ID))
	assert.False(t, cliente.Ativo)
}
