package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaService interface {
	Criar(ctx context.Context, req dto.CriarCaixaRequest) (*dto.CaixaResponse, error)
	Listar(ctx context.Context) ([]dto.CaixaResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error)
	Abrir(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error)
	Sangria(ctx context.Context, id uuid.UUID, req dto.MovimentoCaixaRequest) error
	Suprimento(ctx context.Context, id uuid.UUID, req dto.MovimentoCaixaRequest) error
	Relatorio(ctx context.Context, id uuid.UUID) (*dto.RelatorioCaixaResponse, error)
	// ValidarAberto is called by OperacaoService before committing an operation.
	ValidarAberto(ctx context.Context, id uuid.UUID) error
	// Lock returns the mutex that serializes state changes on a caixa.
	Lock(id uuid.UUID) *sync.Mutex
}

type caixaService struct {
	repo         repository.CaixaRepository
	operacaoRepo repository.OperacaoRepository
	locks        sync.Map // uuid.UUID -> *sync.Mutex
}

func NewCaixaService(repo repository.CaixaRepository, operacaoRepo repository.OperacaoRepository) CaixaService {
	return &caixaService{repo: repo, operacaoRepo: operacaoRepo}
}

// Lock serializes lifecycle changes and operation commits per caixa, so two
// concurrent requests cannot both mutate the same till.
func (s *caixaService) Lock(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ── Criar ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Criar(ctx context.Context, req dto.CriarCaixaRequest) (*dto.CaixaResponse, error) {
	if req.SaldoInicial.IsNegative() {
		return nil, ErrValorInvalido
	}
	caixa := &model.Caixa{
		Numero:       req.Numero,
		Descricao:    req.Descricao,
		Estado:       model.EstadoCaixaFechado,
		SaldoInicial: req.SaldoInicial,
		SaldoAtual:   req.SaldoInicial,
	}
	if err := s.repo.Create(ctx, caixa); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return caixaToResponse(caixa), nil
}

func (s *caixaService) Listar(ctx context.Context) ([]dto.CaixaResponse, error) {
	caixas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CaixaResponse, 0, len(caixas))
	for i := range caixas {
		out = append(out, *caixaToResponse(&caixas[i]))
	}
	return out, nil
}

func (s *caixaService) Obter(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error) {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	return caixaToResponse(caixa), nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// Opening wipes the previous session's operation history but keeps the running
// saldo: the till carries its balance across sessions.

func (s *caixaService) Abrir(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error) {
	mu := s.Lock(id)
	mu.Lock()
	defer mu.Unlock()

	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	if caixa.Estado == model.EstadoCaixaAberto {
		return nil, ErrCaixaJaAberto
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteOperacoesTx(ctx, tx, id); err != nil {
			return err
		}
		now := time.Now()
		caixa.Estado = model.EstadoCaixaAberto
		caixa.AbertoEm = &now
		caixa.FechadoEm = nil
		caixa.TotalSangrias = decimal.Zero
		caixa.TotalSuprimentos = decimal.Zero
		if tx == nil {
			return s.repo.Update(ctx, caixa)
		}
		return tx.WithContext(ctx).Save(caixa).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return caixaToResponse(caixa), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────

func (s *caixaService) Fechar(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error) {
	mu := s.Lock(id)
	mu.Lock()
	defer mu.Unlock()

	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	if caixa.Estado == model.EstadoCaixaFechado {
		return nil, ErrCaixaJaFechado
	}

	now := time.Now()
	caixa.Estado = model.EstadoCaixaFechado
	caixa.FechadoEm = &now
	if err := s.repo.Update(ctx, caixa); err != nil {
		return nil, err
	}
	return caixaToResponse(caixa), nil
}

// ── Sangria / Suprimento ──────────────────────────────────────────────────────
// Manual withdrawals and top-ups are recorded as immutable movements and
// accumulated on the caixa totals. The running saldo tracks operations only.

func (s *caixaService) Sangria(ctx context.Context, id uuid.UUID, req dto.MovimentoCaixaRequest) error {
	return s.registrarMovimento(ctx, id, model.MovimentoSangria, req)
}

func (s *caixaService) Suprimento(ctx context.Context, id uuid.UUID, req dto.MovimentoCaixaRequest) error {
	return s.registrarMovimento(ctx, id, model.MovimentoSuprimento, req)
}

func (s *caixaService) registrarMovimento(ctx context.Context, id uuid.UUID, tipo string, req dto.MovimentoCaixaRequest) error {
	if !req.Valor.IsPositive() {
		return ErrValorInvalido
	}

	mu := s.Lock(id)
	mu.Lock()
	defer mu.Unlock()

	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNaoEncontrado
	}
	if caixa.Estado != model.EstadoCaixaAberto {
		return ErrCaixaFechado
	}

	mov := &model.MovimentoCaixa{
		CaixaID:   id,
		Tipo:      tipo,
		Valor:     req.Valor,
		Descricao: req.Descricao,
	}
	if err := s.repo.CreateMovimento(ctx, mov); err != nil {
		return err
	}

	if tipo == model.MovimentoSangria {
		caixa.TotalSangrias = caixa.TotalSangrias.Add(req.Valor)
	} else {
		caixa.TotalSuprimentos = caixa.TotalSuprimentos.Add(req.Valor)
	}
	return s.repo.Update(ctx, caixa)
}

// ── Relatorio ─────────────────────────────────────────────────────────────────

func (s *caixaService) Relatorio(ctx context.Context, id uuid.UUID) (*dto.RelatorioCaixaResponse, error) {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}

	totais, err := s.repo.SumPagamentosPorMetodo(ctx, id)
	if err != nil {
		return nil, err
	}

	movs, err := s.repo.ListMovimentos(ctx, id)
	if err != nil {
		return nil, err
	}
	movResp := make([]dto.MovimentoCaixaResponse, 0, len(movs))
	for _, m := range movs {
		movResp = append(movResp, dto.MovimentoCaixaResponse{
			ID:        m.ID.String(),
			Tipo:      m.Tipo,
			Valor:     m.Valor,
			Descricao: m.Descricao,
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	// Sem data nem paginação: a sessão inteira entra, senão o relatório
	// diverge dos totais por método (que agregam o caixa todo).
	operacoes, err := s.operacaoRepo.ListByCaixa(ctx, id, model.EstadoOperacaoRegistrada)
	if err != nil {
		return nil, err
	}

	rel := &dto.RelatorioCaixaResponse{
		Caixa:           *caixaToResponse(caixa),
		TotaisPorMetodo: totais,
		TotalVendas:     decimal.Zero,
		TotalCompras:    decimal.Zero,
		Movimentos:      movResp,
		Operacoes:       make([]dto.OperacaoListItem, 0, len(operacoes)),
	}
	for i := range operacoes {
		o := &operacoes[i]
		if o.Tipo == model.TipoVenda {
			rel.TotalVendas = rel.TotalVendas.Add(o.Total)
			rel.QuantidadeVendas++
		} else {
			rel.TotalCompras = rel.TotalCompras.Add(o.Total)
			rel.QuantidadeCompras++
		}
		rel.Operacoes = append(rel.Operacoes, *operacaoToListItem(o))
	}
	return rel, nil
}

// ── ValidarAberto ─────────────────────────────────────────────────────────────

func (s *caixaService) ValidarAberto(ctx context.Context, id uuid.UUID) error {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNaoEncontrado
	}
	if caixa.Estado != model.EstadoCaixaAberto {
		return ErrCaixaFechado
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func caixaToResponse(c *model.Caixa) *dto.CaixaResponse {
	resp := &dto.CaixaResponse{
		ID:               c.ID.String(),
		Numero:           c.Numero,
		Descricao:        c.Descricao,
		Estado:           c.Estado,
		SaldoInicial:     c.SaldoInicial,
		SaldoAtual:       c.SaldoAtual,
		TotalSangrias:    c.TotalSangrias,
		TotalSuprimentos: c.TotalSuprimentos,
	}
	if c.AbertoEm != nil {
		t := c.AbertoEm.UTC().Format(time.RFC3339)
		resp.AbertoEm = &t
	}
	if c.FechadoEm != nil {
		t := c.FechadoEm.UTC().Format(time.RFC3339)
		resp.FechadoEm = &t
	}
	return resp
}
