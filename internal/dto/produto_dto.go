package dto

import "github.com/shopspring/decimal"

type CriarProdutoRequest struct {
	Codigo        string          `json:"codigo"         validate:"required,min=1"`
	Nome          string          `json:"nome"           validate:"required,min=2"`
	Descricao     *string         `json:"descricao"`
	CategoriaID   *string         `json:"categoria_id"   validate:"omitempty,uuid"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"    validate:"min=0"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"    validate:"required"`
	EstoqueAtual  int             `json:"estoque_atual"  validate:"min=0"`
	EstoqueMinimo int             `json:"estoque_minimo" validate:"min=0"`
	UnidadeMedida string          `json:"unidade_medida"`
}

type AtualizarProdutoRequest struct {
	Nome          string          `json:"nome"           validate:"omitempty,min=2"`
	Descricao     *string         `json:"descricao"`
	CategoriaID   *string         `json:"categoria_id"   validate:"omitempty,uuid"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"    validate:"min=0"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"    validate:"min=0"`
	EstoqueMinimo *int            `json:"estoque_minimo" validate:"omitempty,min=0"`
	UnidadeMedida string          `json:"unidade_medida"`
}

type AjustarEstoqueRequest struct {
	Quantidade int    `json:"quantidade" validate:"required"`
	Motivo     string `json:"motivo"     validate:"required,min=3"`
}

// ProdutoFilter is bound from the query string of GET /v1/produtos.
// Busca matches against nome and codigo (the product lookup collaborator).
type ProdutoFilter struct {
	Busca           string `form:"busca"`
	CategoriaID     string `form:"categoria_id" validate:"omitempty,uuid"`
	IncluirInativos bool   `form:"incluir_inativos"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProdutoResponse struct {
	ID            string          `json:"id"`
	Codigo        string          `json:"codigo"`
	Nome          string          `json:"nome"`
	Descricao     *string         `json:"descricao"`
	CategoriaID   *string         `json:"categoria_id"`
	Categoria     *string         `json:"categoria"`
	PrecoCusto    decimal.Decimal `json:"preco_custo"`
	PrecoVenda    decimal.Decimal `json:"preco_venda"`
	EstoqueAtual  int             `json:"estoque_atual"`
	EstoqueMinimo int             `json:"estoque_minimo"`
	UnidadeMedida string          `json:"unidade_medida"`
	Ativo         bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ConsultaPrecoResponse is the payload of the public price lookup, cached in Redis.
type ConsultaPrecoResponse struct {
	Nome              string          `json:"nome"`
	PrecoVenda        decimal.Decimal `json:"preco_venda"`
	EstoqueDisponivel int             `json:"estoque_disponivel"`
	Categoria         *string         `json:"categoria"`
}

type CriarCategoriaRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
}

type CategoriaResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Ativo bool   `json:"ativo"`
}
