package model

import (
	"time"

	"github.com/google/uuid"
)

// Fornecedor is a supplier, the counterparty of purchase operations.
type Fornecedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazaoSocial string    `gorm:"not null"`
	CNPJ        string    `gorm:"column:cnpj;uniqueIndex;not null"`
	Telefone    *string
	Email       *string
	BairroID    *uuid.UUID `gorm:"type:uuid"`
	Logradouro  *string
	Ativo       bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Bairro *Bairro `gorm:"foreignKey:BairroID"`
}

func (Fornecedor) TableName() string { return "fornecedores" }
