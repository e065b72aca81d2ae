package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a registered customer. SaldoBonus is the store-credit balance
// usable as a payment method; it never goes negative.
type Cliente struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome       string    `gorm:"index;not null"`
	CPF        string    `gorm:"column:cpf;uniqueIndex;not null"`
	Telefone   *string
	Email      *string
	SaldoBonus decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BairroID   *uuid.UUID      `gorm:"type:uuid"`
	Logradouro *string
	NumeroCasa *string
	Ativo      bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Bairro *Bairro `gorm:"foreignKey:BairroID"`
}

// MovimentoBonus is an immutable entry in a customer's bonus ledger.
// Tipo: "credito" (grant) | "debito" (redeem). Redeems reference the
// operation that consumed the balance.
type MovimentoBonus struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo         string          `gorm:"type:varchar(10);not null"`
	Valor        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao    string          `gorm:"not null"`
	ReferenciaID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (MovimentoBonus) TableName() string { return "movimentos_bonus" }
