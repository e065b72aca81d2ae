package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operation kinds and payment methods accepted by the ledger.
const (
	TipoVenda  = "venda"
	TipoCompra = "compra"

	MetodoDinheiro      = "dinheiro"
	MetodoCartaoCredito = "cartao_credito"
	MetodoCartaoDebito  = "cartao_debito"
	MetodoPix           = "pix"
	MetodoBoleto        = "boleto"
	MetodoBonus         = "bonus"

	EstadoOperacaoRegistrada = "registrada"
	EstadoOperacaoCancelada  = "cancelada"
)

// Operacao is a sale or purchase committed against exactly one Caixa.
// The counterparty is mutually exclusive by Tipo: venda → Cliente,
// compra → Fornecedor. Once committed it only changes through the
// explicit edit-and-recommit flow, which replaces the row in place.
type Operacao struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo         string          `gorm:"type:varchar(10);not null"`
	ClienteID    *uuid.UUID      `gorm:"type:uuid;index"`
	FornecedorID *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Desconto     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Estado: "registrada" | "cancelada"
	Estado    string    `gorm:"type:varchar(20);not null;default:'registrada'"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Itens      []OperacaoItem      `gorm:"foreignKey:OperacaoID"`
	Pagamentos []OperacaoPagamento `gorm:"foreignKey:OperacaoID"`
	Cliente    *Cliente            `gorm:"foreignKey:ClienteID"`
	Fornecedor *Fornecedor         `gorm:"foreignKey:FornecedorID"`
}

func (Operacao) TableName() string { return "operacoes" }

// OperacaoItem is a line item owned by exactly one Operacao.
// Subtotal = Quantidade × PrecoUnitario; product name and code are cached
// at commit time so the receipt survives later catalog edits.
type OperacaoItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperacaoID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null"`
	CodigoProduto string          `gorm:"not null"`
	NomeProduto   string          `gorm:"not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (OperacaoItem) TableName() string { return "operacao_itens" }

// OperacaoPagamento is one payment entry of an Operacao.
// Parcelas is only meaningful for cartao_credito (1–12).
type OperacaoPagamento struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperacaoID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Metodo     string          `gorm:"type:varchar(20);not null"`
	Valor      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Parcelas   *int
}

func (OperacaoPagamento) TableName() string { return "operacao_pagamentos" }
