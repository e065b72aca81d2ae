package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EstadoCaixaAberto  = "aberto"
	EstadoCaixaFechado = "fechado"

	MovimentoSangria    = "sangria"
	MovimentoSuprimento = "suprimento"
)

// Caixa represents a cash register with an open/close lifecycle.
// Estado: "aberto" | "fechado". A caixa is re-openable; there is no
// terminal state. Saldo is only mutated while Estado = "aberto".
type Caixa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    int       `gorm:"uniqueIndex;not null"`
	Descricao string    `gorm:"not null"`
	Estado    string    `gorm:"type:varchar(20);not null;default:'fechado'"`
	// SaldoInicial is set administratively at creation; SaldoAtual moves with
	// every committed operation (+venda, -compra).
	SaldoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaldoAtual   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Session totals for sangria/suprimento. The amounts are recorded but do
	// not move SaldoAtual (observed behavior of the original handlers).
	TotalSangrias    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalSuprimentos decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AbertoEm         *time.Time
	FechadoEm        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Operacoes []Operacao `gorm:"foreignKey:CaixaID"`
}

// MovimentoCaixa is an immutable entry in the caixa ledger.
// Tipo: "sangria" | "suprimento". Entries are never updated or deleted.
type MovimentoCaixa struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo      string          `gorm:"type:varchar(20);not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao string          `gorm:"not null"`
	CreatedAt time.Time
}
