package service_test

import (
	"testing"

	"estoquepos/internal/model"
	"estoquepos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func produtoDeCatalogo(precoCusto, precoVenda float64) *model.Produto {
	return &model.Produto{
		ID:         uuid.New(),
		Codigo:     "7891000100103",
		Nome:       "Café 500g",
		PrecoCusto: d(precoCusto),
		PrecoVenda: d(precoVenda),
		Ativo:      true,
	}
}

func TestRascunho_AddItem_PrecoPorTipo(t *testing.T) {
	p := produtoDeCatalogo(10, 18)

	venda := service.NovoRascunho(model.TipoVenda)
	require.NoError(t, venda.AddItem(p, 3))
	assert.Equal(t, "18", venda.Itens[0].PrecoUnitario.String())
	assert.Equal(t, "54", venda.Itens[0].Subtotal.String())

	compra := service.NovoRascunho(model.TipoCompra)
	require.NoError(t, compra.AddItem(p, 3))
	assert.Equal(t, "10", compra.Itens[0].PrecoUnitario.String())
	assert.Equal(t, "30", compra.Itens[0].Subtotal.String())
}

func TestRascunho_AddItem_QuantidadeInvalida(t *testing.T) {
	r := service.NovoRascunho(model.TipoVenda)
	assert.ErrorIs(t, r.AddItem(produtoDeCatalogo(10, 18), 0), service.ErrValorInvalido)
	assert.ErrorIs(t, r.AddItem(produtoDeCatalogo(10, 18), -2), service.ErrValorInvalido)
}

func TestRascunho_RemoveItem_IndiceForaIgnorado(t *testing.T) {
	r := service.NovoRascunho(model.TipoVenda)
	require.NoError(t, r.AddItem(produtoDeCatalogo(10, 18), 1))

	r.RemoveItem(5)
	r.RemoveItem(-1)
	assert.Len(t, r.Itens, 1)

	r.RemoveItem(0)
	assert.Empty(t, r.Itens)
}

func TestRascunho_SetContraparte(t *testing.T) {
	clienteID := uuid.New()
	fornecedorID := uuid.New()

	venda := service.NovoRascunho(model.TipoVenda)
	assert.NoError(t, venda.SetContraparte(&clienteID, nil))
	assert.ErrorIs(t, venda.SetContraparte(nil, &fornecedorID), service.ErrContraparteInvalida)

	compra := service.NovoRascunho(model.TipoCompra)
	assert.NoError(t, compra.SetContraparte(nil, &fornecedorID))
	assert.ErrorIs(t, compra.SetContraparte(&clienteID, nil), service.ErrContraparteInvalida)

	invalido := service.NovoRascunho("troca")
	assert.ErrorIs(t, invalido.SetContraparte(nil, nil), service.ErrContraparteInvalida)
}

func TestRascunho_AddPagamento_Validacoes(t *testing.T) {
	r := service.NovoRascunho(model.TipoVenda)

	assert.ErrorIs(t, r.AddPagamento("", d(10), nil), service.ErrMetodoAusente)
	assert.ErrorIs(t, r.AddPagamento("cheque", d(10), nil), service.ErrPagamentoInvalido)
	assert.ErrorIs(t, r.AddPagamento(model.MetodoPix, decimal.Zero, nil), service.ErrPagamentoInvalido)
	assert.ErrorIs(t, r.AddPagamento(model.MetodoPix, d(-5), nil), service.ErrPagamentoInvalido)

	// Parcelas só valem para cartão de crédito, 1–12
	parcelas := 3
	assert.ErrorIs(t, r.AddPagamento(model.MetodoPix, d(10), &parcelas), service.ErrParcelasInvalidas)
	demais := 13
	assert.ErrorIs(t, r.AddPagamento(model.MetodoCartaoCredito, d(10), &demais), service.ErrParcelasInvalidas)
	assert.NoError(t, r.AddPagamento(model.MetodoCartaoCredito, d(10), &parcelas))
	assert.NoError(t, r.AddPagamento(model.MetodoDinheiro, d(20), nil))
	assert.Len(t, r.Pagamentos, 2)
}

func TestRascunho_RemovePagamento(t *testing.T) {
	r := service.NovoRascunho(model.TipoVenda)
	require.NoError(t, r.AddPagamento(model.MetodoDinheiro, d(20), nil))

	assert.ErrorIs(t, r.RemovePagamento(3), service.ErrIndiceInvalido)
	assert.NoError(t, r.RemovePagamento(0))
	assert.Empty(t, r.Pagamentos)
}

func TestRascunho_Validar(t *testing.T) {
	r := service.NovoRascunho(model.TipoVenda)
	assert.ErrorIs(t, r.Validar(), service.ErrSemItens)

	require.NoError(t, r.AddItem(produtoDeCatalogo(10, 100), 2)) // total 200
	require.NoError(t, r.AddPagamento(model.MetodoDinheiro, d(150), nil))
	assert.ErrorIs(t, r.Validar(), service.ErrPagamentoInsuficiente)

	require.NoError(t, r.AddPagamento(model.MetodoPix, d(50), nil))
	assert.NoError(t, r.Validar())

	// Desconto reduz o total exigido
	r.Desconto = d(60)
	require.NoError(t, r.RemovePagamento(1))
	assert.NoError(t, r.Validar()) // 150 >= 140
}

func TestRascunho_TotalMetodo(t *testing.T) {
	r := service.NovoRascunho(model.TipoVenda)
	require.NoError(t, r.AddPagamento(model.MetodoBonus, d(30), nil))
	require.NoError(t, r.AddPagamento(model.MetodoDinheiro, d(70), nil))
	require.NoError(t, r.AddPagamento(model.MetodoBonus, d(20), nil))

	assert.Equal(t, "50", r.TotalMetodo(model.MetodoBonus).String())
	assert.Equal(t, "70", r.TotalMetodo(model.MetodoDinheiro).String())
}
