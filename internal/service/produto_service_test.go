package service_test

import (
	"context"
	"testing"

	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriarProduto(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := service.NewProdutoService(repo, nil)

	resp, err := svc.Criar(context.Background(), dto.CriarProdutoRequest{
		Codigo:       "7891000100103",
		Nome:         "Arroz 5kg",
		PrecoCusto:   d(18),
		PrecoVenda:   d(27.9),
		EstoqueAtual: 40,
	})
	require.NoError(t, err)
	assert.True(t, resp.Ativo)
	assert.Equal(t, "27.9", resp.PrecoVenda.String())
}

func TestCriarProduto_PrecoNegativo(t *testing.T) {
	svc := service.NewProdutoService(newStubProdutoRepo(), nil)

	_, err := svc.Criar(context.Background(), dto.CriarProdutoRequest{
		Codigo: "123", Nome: "Inválido", PrecoVenda: d(-1),
	})
	assert.ErrorIs(t, err, service.ErrValorInvalido)
}

func TestAjustarEstoque(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := service.NewProdutoService(repo, nil)
	p := seedProduto(repo, "Feijão 1kg", "111", 10, 8)

	resp, err := svc.AjustarEstoque(context.Background(), p.ID, dto.AjustarEstoqueRequest{
		Quantidade: -4, Motivo: "Perda por validade",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.EstoqueAtual)

	require.Len(t, repo.movimentos, 1)
	mov := repo.movimentos[0]
	assert.Equal(t, "ajuste", mov.Tipo)
	assert.Equal(t, -4, mov.Quantidade)
	assert.Equal(t, 10, mov.EstoqueAnterior)
	assert.Equal(t, 6, mov.EstoqueNovo)
	assert.Equal(t, "Perda por validade", mov.Motivo)
}

func TestAjustarEstoque_ResultadoNegativo(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := service.NewProdutoService(repo, nil)
	p := seedProduto(repo, "Feijão 1kg", "111", 3, 8)

	_, err := svc.AjustarEstoque(context.Background(), p.ID, dto.AjustarEstoqueRequest{
		Quantidade: -5, Motivo: "Perda",
	})
	assert.ErrorIs(t, err, service.ErrEstoqueInsuficiente)
	assert.Equal(t, 3, p.EstoqueAtual)
	assert.Empty(t, repo.movimentos)
}

func TestAjustarEstoque_NaoEncontrado(t *testing.T) {
	svc := service.NewProdutoService(newStubProdutoRepo(), nil)

	_, err := svc.AjustarEstoque(context.Background(), uuid.New(), dto.AjustarEstoqueRequest{
		Quantidade: 1, Motivo: "Entrada",
	})
	assert.ErrorIs(t, err, service.ErrNaoEncontrado)
}

func TestDesativarProduto(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := service.NewProdutoService(repo, nil)
	p := seedProduto(repo, "Descontinuado", "999", 0, 5)

	require.NoError(t, svc.Desativar(context.Background(), p.ID))
	assert.False(t, p.Ativo)
}

func TestCategorias(t *testing.T) {
	repo := newStubProdutoRepo()
	svc := service.NewProdutoService(repo, nil)

	criada, err := svc.CriarCategoria(context.Background(), dto.CriarCategoriaRequest{Nome: "Bebidas"})
	require.NoError(t, err)
	assert.True(t, criada.Ativo)

	lista, err := svc.ListarCategorias(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Bebidas", lista[0].Nome)
}
