package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// OperacaoFilter is bound from the query string of GET /v1/operacoes.
type OperacaoFilter struct {
	CaixaID string `form:"caixa_id" validate:"omitempty,uuid"`
	Data    string `form:"data"`                        // YYYY-MM-DD; empty = today
	Tipo    string `form:"tipo"`                        // venda | compra | all
	Estado  string `form:"estado,default=registrada"`   // registrada | cancelada | all
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OperacaoListItem struct {
	ID          string                  `json:"id"`
	CaixaID     string                  `json:"caixa_id"`
	Tipo        string                  `json:"tipo"`
	Contraparte *string                 `json:"contraparte"`
	Subtotal    decimal.Decimal         `json:"subtotal"`
	Desconto    decimal.Decimal         `json:"desconto"`
	Total       decimal.Decimal         `json:"total"`
	Estado      string                  `json:"estado"`
	Itens       []ItemOperacaoResponse  `json:"itens"`
	Pagamentos  []PagamentoResponse     `json:"pagamentos"`
	CreatedAt   string                  `json:"created_at"`
}

type OperacaoListResponse struct {
	Data  []OperacaoListItem `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemOperacaoRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,min=1"`
}

type PagamentoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=dinheiro cartao_credito cartao_debito pix boleto bonus"`
	Valor  decimal.Decimal `json:"valor"  validate:"required"`
	// Parcelas: credit card only, 1–12
	Parcelas *int `json:"parcelas" validate:"omitempty,min=1,max=12"`
}

// RegistrarOperacaoRequest carries a complete operation draft: the caller
// assembles items and payments client-side and submits them in one shot.
type RegistrarOperacaoRequest struct {
	CaixaID      string                `json:"caixa_id"      validate:"required,uuid"`
	Tipo         string                `json:"tipo"          validate:"required,oneof=venda compra"`
	ClienteID    *string               `json:"cliente_id"    validate:"omitempty,uuid"`
	FornecedorID *string               `json:"fornecedor_id" validate:"omitempty,uuid"`
	Itens        []ItemOperacaoRequest `json:"itens"         validate:"required,dive"`
	Pagamentos   []PagamentoRequest    `json:"pagamentos"    validate:"required,dive"`
	Desconto     decimal.Decimal       `json:"desconto"      validate:"min=0"`
	// ClienteEmail: optional — when present, the receipt worker mails the PDF.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

type CancelarOperacaoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemOperacaoResponse struct {
	ProdutoID     string          `json:"produto_id"`
	Codigo        string          `json:"codigo"`
	Nome          string          `json:"nome"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type PagamentoResponse struct {
	Metodo   string          `json:"metodo"`
	Valor    decimal.Decimal `json:"valor"`
	Parcelas *int            `json:"parcelas,omitempty"`
}

type OperacaoResponse struct {
	ID          string                 `json:"id"`
	CaixaID     string                 `json:"caixa_id"`
	Tipo        string                 `json:"tipo"`
	Contraparte *string                `json:"contraparte"`
	Itens       []ItemOperacaoResponse `json:"itens"`
	Pagamentos  []PagamentoResponse    `json:"pagamentos"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	Desconto    decimal.Decimal        `json:"desconto"`
	Total       decimal.Decimal        `json:"total"`
	TotalPago   decimal.Decimal        `json:"total_pago"`
	Troco       decimal.Decimal        `json:"troco"`
	SaldoCaixa  decimal.Decimal        `json:"saldo_caixa"`
	Estado      string                 `json:"estado"`
	CreatedAt   string                 `json:"created_at"`
}
