package dto

import "github.com/shopspring/decimal"

type CriarClienteRequest struct {
	Nome       string  `json:"nome"       validate:"required,min=3"`
	CPF        string  `json:"cpf"        validate:"required,len=11"`
	Telefone   *string `json:"telefone"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	BairroID   *string `json:"bairro_id"  validate:"omitempty,uuid"`
	Logradouro *string `json:"logradouro"`
	NumeroCasa *string `json:"numero_casa"`
}

type ClienteResponse struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	CPF        string          `json:"cpf"`
	Telefone   *string         `json:"telefone"`
	Email      *string         `json:"email"`
	SaldoBonus decimal.Decimal `json:"saldo_bonus"`
	BairroID   *string         `json:"bairro_id"`
	Logradouro *string         `json:"logradouro"`
	NumeroCasa *string         `json:"numero_casa"`
	Ativo      bool            `json:"ativo"`
}

// ConcederBonusRequest credits store bonus to a customer.
type ConcederBonusRequest struct {
	Valor     decimal.Decimal `json:"valor"     validate:"required"`
	Descricao string          `json:"descricao" validate:"required,min=3"`
}

type MovimentoBonusResponse struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"` // credito | debito
	Valor     decimal.Decimal `json:"valor"`
	Descricao string          `json:"descricao"`
	CreatedAt string          `json:"created_at"`
}
