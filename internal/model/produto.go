package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a catalog product looked up when building operation line items.
type Produto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo        string    `gorm:"uniqueIndex;not null"`
	Nome          string    `gorm:"index;not null"`
	Descricao     *string
	CategoriaID   *uuid.UUID      `gorm:"type:uuid;index"`
	PrecoCusto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecoVenda    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EstoqueAtual  int             `gorm:"not null;default:0"`
	EstoqueMinimo int             `gorm:"not null;default:5"`
	UnidadeMedida string          `gorm:"not null;default:'unidade'"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

// Categoria groups products for catalog filtering.
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovimentoEstoque records every stock change with before/after snapshots.
// Tipo: "venda" | "compra" | "ajuste" | "restauracao_cancelamento" | "edicao"
type MovimentoEstoque struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Tipo            string     `gorm:"type:varchar(30);not null"`
	Quantidade      int        `gorm:"not null"`
	EstoqueAnterior int        `gorm:"not null"`
	EstoqueNovo     int        `gorm:"not null"`
	Motivo          string     `gorm:"not null"`
	ReferenciaID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
}

func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
