package repository

import (
	"context"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperacaoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Operacao) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operacao, error)
	// ReplaceTx rewrites the items and payments of an operation and saves the
	// new header values. Used by the edit flow.
	ReplaceTx(ctx context.Context, tx *gorm.DB, o *model.Operacao) error
	UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	List(ctx context.Context, filter dto.OperacaoFilter) ([]model.Operacao, int64, error)
	// ListByCaixa returns every operation of a caixa in the given estado,
	// without date filter or pagination. The caixa report must see the whole
	// session, including operations registered before midnight.
	ListByCaixa(ctx context.Context, caixaID uuid.UUID, estado string) ([]model.Operacao, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type operacaoRepo struct{ db *gorm.DB }

func NewOperacaoRepository(db *gorm.DB) OperacaoRepository { return &operacaoRepo{db: db} }

func (r *operacaoRepo) DB() *gorm.DB { return r.db }

func (r *operacaoRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Operacao) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *operacaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Operacao, error) {
	var o model.Operacao
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Pagamentos").
		Preload("Cliente").Preload("Fornecedor").
		First(&o, id).Error
	return &o, err
}

func (r *operacaoRepo) ReplaceTx(ctx context.Context, tx *gorm.DB, o *model.Operacao) error {
	if err := tx.WithContext(ctx).Where("operacao_id = ?", o.ID).Delete(&model.OperacaoItem{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("operacao_id = ?", o.ID).Delete(&model.OperacaoPagamento{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
}

func (r *operacaoRepo) UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.WithContext(ctx).Model(&model.Operacao{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *operacaoRepo) ListByCaixa(ctx context.Context, caixaID uuid.UUID, estado string) ([]model.Operacao, error) {
	var operacoes []model.Operacao
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Pagamentos").
		Preload("Cliente").Preload("Fornecedor").
		Where("caixa_id = ? AND estado = ?", caixaID, estado).
		Order("created_at DESC").
		Find(&operacoes).Error
	return operacoes, err
}

func (r *operacaoRepo) List(ctx context.Context, filter dto.OperacaoFilter) ([]model.Operacao, int64, error) {
	var operacoes []model.Operacao
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Operacao{})

	if filter.CaixaID != "" {
		q = q.Where("caixa_id = ?", filter.CaixaID)
	}
	if filter.Tipo != "" && filter.Tipo != "all" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens").Preload("Pagamentos").
		Preload("Cliente").Preload("Fornecedor").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&operacoes).Error

	return operacoes, total, err
}
