package repository

import (
	"context"

	"estoquepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorRepository interface {
	Create(ctx context.Context, f *model.Fornecedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error)
	List(ctx context.Context, busca string, incluirInativos bool) ([]model.Fornecedor, error)
	Update(ctx context.Context, f *model.Fornecedor) error
}

type fornecedorRepo struct{ db *gorm.DB }

func NewFornecedorRepository(db *gorm.DB) FornecedorRepository { return &fornecedorRepo{db: db} }

func (r *fornecedorRepo) Create(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fornecedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fornecedor, error) {
	var f model.Fornecedor
	err := r.db.WithContext(ctx).Preload("Bairro").First(&f, id).Error
	return &f, err
}

func (r *fornecedorRepo) List(ctx context.Context, busca string, incluirInativos bool) ([]model.Fornecedor, error) {
	var fornecedores []model.Fornecedor
	q := r.db.WithContext(ctx).Model(&model.Fornecedor{})
	if busca != "" {
		like := "%" + busca + "%"
		q = q.Where("razao_social ILIKE ? OR cnpj LIKE ?", like, like)
	}
	if !incluirInativos {
		q = q.Where("ativo = true")
	}
	err := q.Order("razao_social ASC").Find(&fornecedores).Error
	return fornecedores, err
}

func (r *fornecedorRepo) Update(ctx context.Context, f *model.Fornecedor) error {
	return r.db.WithContext(ctx).Save(f).Error
}
