package service_test

import (
	"context"
	"errors"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. Services run with a nil *gorm.DB in unit tests, so
// every Tx method accepts a nil tx and mutates the maps directly.

type stubCaixaRepo struct {
	caixas          map[uuid.UUID]*model.Caixa
	movimentos      []model.MovimentoCaixa
	pagamentosSoma  map[string]decimal.Decimal
	operacoesWiped  int
	duplicadoNoNext bool
}

func newStubCaixaRepo() *stubCaixaRepo {
	return &stubCaixaRepo{
		caixas:         make(map[uuid.UUID]*model.Caixa),
		pagamentosSoma: make(map[string]decimal.Decimal),
	}
}

func (r *stubCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	if r.duplicadoNoNext {
		return gorm.ErrDuplicatedKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.caixas[c.ID] = c
	return nil
}

func (r *stubCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCaixaRepo) FindByNumero(_ context.Context, numero int) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.Numero == numero {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCaixaRepo) List(_ context.Context) ([]model.Caixa, error) {
	out := make([]model.Caixa, 0, len(r.caixas))
	for _, c := range r.caixas {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCaixaRepo) Update(_ context.Context, c *model.Caixa) error {
	r.caixas[c.ID] = c
	return nil
}

func (r *stubCaixaRepo) AtualizarSaldoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.caixas[id]
	if !ok {
		return errors.New("not found")
	}
	c.SaldoAtual = c.SaldoAtual.Add(delta)
	return nil
}

func (r *stubCaixaRepo) DeleteOperacoesTx(_ context.Context, _ *gorm.DB, _ uuid.UUID) error {
	r.operacoesWiped++
	return nil
}

func (r *stubCaixaRepo) CreateMovimento(_ context.Context, m *model.MovimentoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubCaixaRepo) ListMovimentos(_ context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var out []model.MovimentoCaixa
	for _, m := range r.movimentos {
		if m.CaixaID == caixaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCaixaRepo) SumPagamentosPorMetodo(_ context.Context, _ uuid.UUID) (map[string]decimal.Decimal, error) {
	return r.pagamentosSoma, nil
}

func (r *stubCaixaRepo) DB() *gorm.DB { return nil }

var _ repository.CaixaRepository = (*stubCaixaRepo)(nil)

type stubOperacaoRepo struct {
	operacoes map[uuid.UUID]*model.Operacao
}

func newStubOperacaoRepo() *stubOperacaoRepo {
	return &stubOperacaoRepo{operacoes: make(map[uuid.UUID]*model.Operacao)}
}

func (r *stubOperacaoRepo) Create(_ context.Context, _ *gorm.DB, o *model.Operacao) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.operacoes[o.ID] = o
	return nil
}

func (r *stubOperacaoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Operacao, error) {
	o, ok := r.operacoes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOperacaoRepo) ReplaceTx(_ context.Context, _ *gorm.DB, o *model.Operacao) error {
	r.operacoes[o.ID] = o
	return nil
}

func (r *stubOperacaoRepo) UpdateEstadoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	o, ok := r.operacoes[id]
	if !ok {
		return errors.New("not found")
	}
	o.Estado = estado
	return nil
}

func (r *stubOperacaoRepo) List(_ context.Context, filter dto.OperacaoFilter) ([]model.Operacao, int64, error) {
	var out []model.Operacao
	for _, o := range r.operacoes {
		if filter.CaixaID != "" && o.CaixaID.String() != filter.CaixaID {
			continue
		}
		if filter.Tipo != "" && filter.Tipo != "all" && o.Tipo != filter.Tipo {
			continue
		}
		if filter.Estado != "" && filter.Estado != "all" && o.Estado != filter.Estado {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOperacaoRepo) ListByCaixa(_ context.Context, caixaID uuid.UUID, estado string) ([]model.Operacao, error) {
	var out []model.Operacao
	for _, o := range r.operacoes {
		if o.CaixaID == caixaID && o.Estado == estado {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOperacaoRepo) DB() *gorm.DB { return nil }

var _ repository.OperacaoRepository = (*stubOperacaoRepo)(nil)

type stubProdutoRepo struct {
	produtos   map[uuid.UUID]*model.Produto
	movimentos []model.MovimentoEstoque
	categorias []model.Categoria
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func seedProduto(r *stubProdutoRepo, nome, codigo string, estoque int, precoVenda float64) *model.Produto {
	p := &model.Produto{
		ID:           uuid.New(),
		Codigo:       codigo,
		Nome:         nome,
		PrecoCusto:   decimal.NewFromFloat(precoVenda).Div(decimal.NewFromInt(2)),
		PrecoVenda:   decimal.NewFromFloat(precoVenda),
		EstoqueAtual: estoque,
		Ativo:        true,
	}
	r.produtos[p.ID] = p
	return p
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProdutoRepo) FindByIDTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	return r.FindByID(ctx, id)
}

func (r *stubProdutoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Produto, error) {
	for _, p := range r.produtos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	out := make([]model.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) UpdateEstoqueTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.produtos[id]
	if !ok {
		return errors.New("not found")
	}
	p.EstoqueAtual += delta
	return nil
}

func (r *stubProdutoRepo) CreateMovimentoEstoqueTx(_ context.Context, _ *gorm.DB, m *model.MovimentoEstoque) error {
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubProdutoRepo) ListMovimentosEstoque(_ context.Context, produtoID uuid.UUID) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if m.ProdutoID == produtoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubProdutoRepo) CreateCategoria(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias = append(r.categorias, *c)
	return nil
}

func (r *stubProdutoRepo) ListCategorias(_ context.Context) ([]model.Categoria, error) {
	return r.categorias, nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

type stubClienteRepo struct {
	clientes   map[uuid.UUID]*model.Cliente
	movimentos []model.MovimentoBonus
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func seedCliente(r *stubClienteRepo, nome string, saldoBonus float64) *model.Cliente {
	c := &model.Cliente{
		ID:         uuid.New(),
		Nome:       nome,
		CPF:        uuid.NewString()[:11],
		SaldoBonus: decimal.NewFromFloat(saldoBonus),
		Ativo:      true,
	}
	r.clientes[c.ID] = c
	return c
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) FindByCPF(_ context.Context, cpf string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.CPF == cpf {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubClienteRepo) List(_ context.Context, _ string, _ bool) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) AtualizarSaldoBonusTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return errors.New("not found")
	}
	c.SaldoBonus = c.SaldoBonus.Add(delta)
	return nil
}

func (r *stubClienteRepo) CreateMovimentoBonusTx(_ context.Context, _ *gorm.DB, m *model.MovimentoBonus) error {
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubClienteRepo) ListMovimentosBonus(_ context.Context, clienteID uuid.UUID) ([]model.MovimentoBonus, error) {
	var out []model.MovimentoBonus
	for _, m := range r.movimentos {
		if m.ClienteID == clienteID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)
