package dto

type CriarFornecedorRequest struct {
	RazaoSocial string  `json:"razao_social" validate:"required,min=3"`
	CNPJ        string  `json:"cnpj"         validate:"required,len=14"`
	Telefone    *string `json:"telefone"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	BairroID    *string `json:"bairro_id"    validate:"omitempty,uuid"`
	Logradouro  *string `json:"logradouro"`
}

type FornecedorResponse struct {
	ID          string  `json:"id"`
	RazaoSocial string  `json:"razao_social"`
	CNPJ        string  `json:"cnpj"`
	Telefone    *string `json:"telefone"`
	Email       *string `json:"email"`
	BairroID    *string `json:"bairro_id"`
	Logradouro  *string `json:"logradouro"`
	Ativo       bool    `json:"ativo"`
}
