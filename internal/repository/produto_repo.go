package repository

import (
	"context"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	// FindByIDTx reads a product inside a transaction. Callers must pass the tx instance.
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	Update(ctx context.Context, p *model.Produto) error
	// UpdateEstoqueTx applies a signed delta to estoque_atual inside a transaction.
	UpdateEstoqueTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error
	CreateMovimentoEstoqueTx(ctx context.Context, tx *gorm.DB, m *model.MovimentoEstoque) error
	ListMovimentosEstoque(ctx context.Context, produtoID uuid.UUID) ([]model.MovimentoEstoque, error)
	CreateCategoria(ctx context.Context, c *model.Categoria) error
	ListCategorias(ctx context.Context) ([]model.Categoria, error)
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) DB() *gorm.DB { return r.db }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Categoria").Where("codigo = ?", codigo).First(&p).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Produto{})

	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where("nome ILIKE ? OR codigo ILIKE ?", like, like)
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}
	if !filter.IncluirInativos {
		q = q.Where("ativo = true")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Categoria").
		Order("nome ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&produtos).Error

	return produtos, total, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) UpdateEstoqueTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.WithContext(ctx).Model(&model.Produto{}).
		Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *produtoRepo) CreateMovimentoEstoqueTx(ctx context.Context, tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *produtoRepo) ListMovimentosEstoque(ctx context.Context, produtoID uuid.UUID) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).Order("created_at DESC").Find(&movs).Error
	return movs, err
}

func (r *produtoRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *produtoRepo) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var categorias []model.Categoria
	err := r.db.WithContext(ctx).Where("ativo = true").Order("nome ASC").Find(&categorias).Error
	return categorias, err
}
