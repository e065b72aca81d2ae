package service

import (
	"estoquepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var metodosValidos = map[string]bool{
	model.MetodoDinheiro:      true,
	model.MetodoCartaoCredito: true,
	model.MetodoCartaoDebito:  true,
	model.MetodoPix:           true,
	model.MetodoBoleto:        true,
	model.MetodoBonus:         true,
}

// RascunhoOperacao assembles an operation before it is committed. It is a
// pure in-memory builder: nothing touches the database until Registrar runs.
type RascunhoOperacao struct {
	Tipo         string
	ClienteID    *uuid.UUID
	FornecedorID *uuid.UUID
	Itens        []model.OperacaoItem
	Pagamentos   []model.OperacaoPagamento
	Desconto     decimal.Decimal
}

func NovoRascunho(tipo string) *RascunhoOperacao {
	return &RascunhoOperacao{Tipo: tipo, Desconto: decimal.Zero}
}

// AddItem prices the line by the operation kind: sales use the retail price,
// purchases use the cost price.
func (r *RascunhoOperacao) AddItem(p *model.Produto, quantidade int) error {
	if quantidade <= 0 {
		return ErrValorInvalido
	}
	preco := p.PrecoVenda
	if r.Tipo == model.TipoCompra {
		preco = p.PrecoCusto
	}
	r.Itens = append(r.Itens, model.OperacaoItem{
		ProdutoID:     p.ID,
		CodigoProduto: p.Codigo,
		NomeProduto:   p.Nome,
		Quantidade:    quantidade,
		PrecoUnitario: preco,
		Subtotal:      preco.Mul(decimal.NewFromInt(int64(quantidade))),
	})
	return nil
}

// RemoveItem drops a line by index. Out-of-range indexes are ignored, so the
// caller can retry removals without tracking list length.
func (r *RascunhoOperacao) RemoveItem(indice int) {
	if indice < 0 || indice >= len(r.Itens) {
		return
	}
	r.Itens = append(r.Itens[:indice], r.Itens[indice+1:]...)
}

// SetContraparte binds the counterparty matching the operation kind:
// venda takes a cliente, compra takes a fornecedor.
func (r *RascunhoOperacao) SetContraparte(clienteID, fornecedorID *uuid.UUID) error {
	switch r.Tipo {
	case model.TipoVenda:
		if fornecedorID != nil {
			return ErrContraparteInvalida
		}
		r.ClienteID = clienteID
	case model.TipoCompra:
		if clienteID != nil {
			return ErrContraparteInvalida
		}
		r.FornecedorID = fornecedorID
	default:
		return ErrContraparteInvalida
	}
	return nil
}

func (r *RascunhoOperacao) AddPagamento(metodo string, valor decimal.Decimal, parcelas *int) error {
	if metodo == "" {
		return ErrMetodoAusente
	}
	if !metodosValidos[metodo] {
		return ErrPagamentoInvalido
	}
	if !valor.IsPositive() {
		return ErrPagamentoInvalido
	}
	if parcelas != nil {
		if metodo != model.MetodoCartaoCredito || *parcelas < 1 || *parcelas > 12 {
			return ErrParcelasInvalidas
		}
	}
	r.Pagamentos = append(r.Pagamentos, model.OperacaoPagamento{
		Metodo:   metodo,
		Valor:    valor,
		Parcelas: parcelas,
	})
	return nil
}

func (r *RascunhoOperacao) RemovePagamento(indice int) error {
	if indice < 0 || indice >= len(r.Pagamentos) {
		return ErrIndiceInvalido
	}
	r.Pagamentos = append(r.Pagamentos[:indice], r.Pagamentos[indice+1:]...)
	return nil
}

func (r *RascunhoOperacao) Subtotal() decimal.Decimal {
	return Subtotal(r.Itens)
}

func (r *RascunhoOperacao) Total() decimal.Decimal {
	return TotalComDesconto(r.Subtotal(), r.Desconto)
}

// TotalMetodo sums the draft payments of one method.
func (r *RascunhoOperacao) TotalMetodo(metodo string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Pagamentos {
		if p.Metodo == metodo {
			total = total.Add(p.Valor)
		}
	}
	return total
}

// Validar runs the commit-time checks: the draft needs at least one item and
// the payments must cover the total.
func (r *RascunhoOperacao) Validar() error {
	if len(r.Itens) == 0 {
		return ErrSemItens
	}
	if TotalPago(r.Pagamentos).LessThan(r.Total()) {
		return ErrPagamentoInsuficiente
	}
	return nil
}
