package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarCaixaRequest struct {
	Numero       int             `json:"numero"        validate:"required,min=1"`
	Descricao    string          `json:"descricao"     validate:"required,min=3"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

// MovimentoCaixaRequest covers sangria and suprimento; the endpoint fixes Tipo.
type MovimentoCaixaRequest struct {
	Valor     decimal.Decimal `json:"valor"     validate:"required"`
	Descricao string          `json:"descricao" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaResponse struct {
	ID               string          `json:"id"`
	Numero           int             `json:"numero"`
	Descricao        string          `json:"descricao"`
	Estado           string          `json:"estado"` // aberto | fechado
	SaldoInicial     decimal.Decimal `json:"saldo_inicial"`
	SaldoAtual       decimal.Decimal `json:"saldo_atual"`
	TotalSangrias    decimal.Decimal `json:"total_sangrias"`
	TotalSuprimentos decimal.Decimal `json:"total_suprimentos"`
	AbertoEm         *string         `json:"aberto_em"`
	FechadoEm        *string         `json:"fechado_em"`
}

type MovimentoCaixaResponse struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"` // sangria | suprimento
	Valor     decimal.Decimal `json:"valor"`
	Descricao string          `json:"descricao"`
	CreatedAt string          `json:"created_at"`
}

// RelatorioCaixaResponse aggregates a caixa session for the dashboard:
// current saldo, per-method payment totals, and the committed operations.
type RelatorioCaixaResponse struct {
	Caixa             CaixaResponse              `json:"caixa"`
	TotaisPorMetodo   map[string]decimal.Decimal `json:"totais_por_metodo"`
	TotalVendas       decimal.Decimal            `json:"total_vendas"`
	TotalCompras      decimal.Decimal            `json:"total_compras"`
	Operacoes         []OperacaoListItem         `json:"operacoes"`
	Movimentos        []MovimentoCaixaResponse   `json:"movimentos"`
	QuantidadeVendas  int                        `json:"quantidade_vendas"`
	QuantidadeCompras int                        `json:"quantidade_compras"`
}
