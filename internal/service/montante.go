package service

import (
	"github.com/shopspring/decimal"

	"estoquepos/internal/model"
)

// Pure money arithmetic shared by the operation pipeline and the reports.
// Everything runs on decimal.Decimal; floats never touch money.

// Subtotal sums the line subtotals of an item list.
func Subtotal(itens []model.OperacaoItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.Subtotal)
	}
	return total
}

// TotalComDesconto applies a discount to a subtotal, clamping at zero so a
// discount larger than the subtotal never produces a negative total.
func TotalComDesconto(subtotal, desconto decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(desconto)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// TotalPago sums the payment entries of an operation.
func TotalPago(pagamentos []model.OperacaoPagamento) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pagamentos {
		total = total.Add(p.Valor)
	}
	return total
}

// Troco returns the change due: what was paid beyond the total, never negative.
func Troco(total, pago decimal.Decimal) decimal.Decimal {
	troco := pago.Sub(total)
	if troco.IsNegative() {
		return decimal.Zero
	}
	return troco
}

// TotalPorMetodo splits the paid amounts of an operation by payment method.
func TotalPorMetodo(pagamentos []model.OperacaoPagamento) map[string]decimal.Decimal {
	totais := make(map[string]decimal.Decimal)
	for _, p := range pagamentos {
		totais[p.Metodo] = totais[p.Metodo].Add(p.Valor)
	}
	return totais
}

// DeltaSaldo is the signed effect of an operation on the till balance:
// sales add, purchases subtract.
func DeltaSaldo(tipo string, total decimal.Decimal) decimal.Decimal {
	if tipo == model.TipoCompra {
		return total.Neg()
	}
	return total
}
