package repository

import (
	"context"

	"estoquepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnderecoRepository interface {
	CreateEstado(ctx context.Context, e *model.Estado) error
	ListEstados(ctx context.Context) ([]model.Estado, error)
	CreateCidade(ctx context.Context, c *model.Cidade) error
	ListCidadesPorEstado(ctx context.Context, estadoID uuid.UUID) ([]model.Cidade, error)
	CreateBairro(ctx context.Context, b *model.Bairro) error
	ListBairrosPorCidade(ctx context.Context, cidadeID uuid.UUID) ([]model.Bairro, error)
	FindBairroByID(ctx context.Context, id uuid.UUID) (*model.Bairro, error)
}

type enderecoRepo struct{ db *gorm.DB }

func NewEnderecoRepository(db *gorm.DB) EnderecoRepository { return &enderecoRepo{db: db} }

func (r *enderecoRepo) CreateEstado(ctx context.Context, e *model.Estado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *enderecoRepo) ListEstados(ctx context.Context) ([]model.Estado, error) {
	var estados []model.Estado
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&estados).Error
	return estados, err
}

func (r *enderecoRepo) CreateCidade(ctx context.Context, c *model.Cidade) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *enderecoRepo) ListCidadesPorEstado(ctx context.Context, estadoID uuid.UUID) ([]model.Cidade, error) {
	var cidades []model.Cidade
	err := r.db.WithContext(ctx).Where("estado_id = ?", estadoID).Order("nome ASC").Find(&cidades).Error
	return cidades, err
}

func (r *enderecoRepo) CreateBairro(ctx context.Context, b *model.Bairro) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *enderecoRepo) ListBairrosPorCidade(ctx context.Context, cidadeID uuid.UUID) ([]model.Bairro, error) {
	var bairros []model.Bairro
	err := r.db.WithContext(ctx).Where("cidade_id = ?", cidadeID).Order("nome ASC").Find(&bairros).Error
	return bairros, err
}

func (r *enderecoRepo) FindBairroByID(ctx context.Context, id uuid.UUID) (*model.Bairro, error) {
	var b model.Bairro
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}
