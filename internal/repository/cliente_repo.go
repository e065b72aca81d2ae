package repository

import (
	"context"

	"estoquepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Cliente, error)
	List(ctx context.Context, busca string, incluirInativos bool) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	// AtualizarSaldoBonusTx applies a signed delta to saldo_bonus inside a transaction.
	AtualizarSaldoBonusTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	CreateMovimentoBonusTx(ctx context.Context, tx *gorm.DB, m *model.MovimentoBonus) error
	ListMovimentosBonus(ctx context.Context, clienteID uuid.UUID) ([]model.MovimentoBonus, error)
	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Preload("Bairro").First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) FindByCPF(ctx context.Context, cpf string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, busca string, incluirInativos bool) ([]model.Cliente, error) {
	var clientes []model.Cliente
	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if busca != "" {
		like := "%" + busca + "%"
		q = q.Where("nome ILIKE ? OR cpf LIKE ?", like, like)
	}
	if !incluirInativos {
		q = q.Where("ativo = true")
	}
	err := q.Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) AtualizarSaldoBonusTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&model.Cliente{}).
		Where("id = ?", id).
		Update("saldo_bonus", gorm.Expr("saldo_bonus + ?", delta)).Error
}

func (r *clienteRepo) CreateMovimentoBonusTx(ctx context.Context, tx *gorm.DB, m *model.MovimentoBonus) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *clienteRepo) ListMovimentosBonus(ctx context.Context, clienteID uuid.UUID) ([]model.MovimentoBonus, error) {
	var movs []model.MovimentoBonus
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&movs).Error
	return movs, err
}
