package repository

import (
	"context"

	"estoquepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	FindByNumero(ctx context.Context, numero int) (*model.Caixa, error)
	List(ctx context.Context) ([]model.Caixa, error)
	Update(ctx context.Context, c *model.Caixa) error
	// AtualizarSaldoTx applies a signed delta to saldo_atual inside a transaction.
	AtualizarSaldoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	// DeleteOperacoesTx removes the operation history of a caixa. Called on reopen.
	DeleteOperacoesTx(ctx context.Context, tx *gorm.DB, caixaID uuid.UUID) error
	CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error
	ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error)
	// SumPagamentosPorMetodo aggregates committed payments of a caixa by method.
	SumPagamentosPorMetodo(ctx context.Context, caixaID uuid.UUID) (map[string]decimal.Decimal, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) DB() *gorm.DB { return r.db }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *caixaRepo) FindByNumero(ctx context.Context, numero int) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Where("numero = ?", numero).First(&c).Error
	return &c, err
}

func (r *caixaRepo) List(ctx context.Context) ([]model.Caixa, error) {
	var caixas []model.Caixa
	err := r.db.WithContext(ctx).Order("numero ASC").Find(&caixas).Error
	return caixas, err
}

func (r *caixaRepo) Update(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *caixaRepo) AtualizarSaldoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&model.Caixa{}).
		Where("id = ?", id).
		Update("saldo_atual", gorm.Expr("saldo_atual + ?", delta)).Error
}

func (r *caixaRepo) DeleteOperacoesTx(ctx context.Context, tx *gorm.DB, caixaID uuid.UUID) error {
	var ids []uuid.UUID
	if err := tx.WithContext(ctx).Model(&model.Operacao{}).
		Where("caixa_id = ?", caixaID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Where("operacao_id IN ?", ids).Delete(&model.OperacaoItem{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("operacao_id IN ?", ids).Delete(&model.OperacaoPagamento{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Where("caixa_id = ?", caixaID).Delete(&model.Operacao{}).Error
}

func (r *caixaRepo) CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var movs []model.MovimentoCaixa
	err := r.db.WithContext(ctx).Where("caixa_id = ?", caixaID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) SumPagamentosPorMetodo(ctx context.Context, caixaID uuid.UUID) (map[string]decimal.Decimal, error) {
	type linha struct {
		Metodo string
		Total  decimal.Decimal
	}
	var linhas []linha
	err := r.db.WithContext(ctx).Model(&model.OperacaoPagamento{}).
		Select("operacao_pagamentos.metodo AS metodo, SUM(operacao_pagamentos.valor) AS total").
		Joins("JOIN operacoes ON operacoes.id = operacao_pagamentos.operacao_id").
		Where("operacoes.caixa_id = ? AND operacoes.estado = ?", caixaID, model.EstadoOperacaoRegistrada).
		Group("operacao_pagamentos.metodo").
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	totais := make(map[string]decimal.Decimal, len(linhas))
	for _, l := range linhas {
		totais[l.Metodo] = l.Total
	}
	return totais, nil
}
