package service

import (
	"context"
	"errors"
	"time"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, busca string, incluirInativos bool) ([]dto.ClienteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarClienteRequest) (*dto.ClienteResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	// ConcederBonus credits bonus to the customer and records the ledger entry.
	ConcederBonus(ctx context.Context, id uuid.UUID, req dto.ConcederBonusRequest) (*dto.ClienteResponse, error)
	ListarMovimentosBonus(ctx context.Context, id uuid.UUID) ([]dto.MovimentoBonusResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nome:       req.Nome,
		CPF:        req.CPF,
		Telefone:   req.Telefone,
		Email:      req.Email,
		Logradouro: req.Logradouro,
		NumeroCasa: req.NumeroCasa,
		Ativo:      true,
	}
	if req.BairroID != nil {
		id, err := uuid.Parse(*req.BairroID)
		if err != nil {
			return nil, ErrValorInvalido
		}
		c.BairroID = &id
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, busca string, incluirInativos bool) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, busca, incluirInativos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	c.Nome = req.Nome
	c.Telefone = req.Telefone
	c.Email = req.Email
	c.Logradouro = req.Logradouro
	c.NumeroCasa = req.NumeroCasa
	if req.BairroID != nil {
		bid, err := uuid.Parse(*req.BairroID)
		if err != nil {
			return nil, ErrValorInvalido
		}
		c.BairroID = &bid
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Desativar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNaoEncontrado
	}
	c.Ativo = false
	return s.repo.Update(ctx, c)
}

func (s *clienteService) ConcederBonus(ctx context.Context, id uuid.UUID, req dto.ConcederBonusRequest) (*dto.ClienteResponse, error) {
	if !req.Valor.IsPositive() {
		return nil, ErrValorInvalido
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AtualizarSaldoBonusTx(ctx, tx, id, req.Valor); err != nil {
			return err
		}
		mov := &model.MovimentoBonus{
			ClienteID: id,
			Tipo:      "credito",
			Valor:     req.Valor,
			Descricao: req.Descricao,
		}
		return s.repo.CreateMovimentoBonusTx(ctx, tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	c.SaldoBonus = c.SaldoBonus.Add(req.Valor)
	return clienteToResponse(c), nil
}

func (s *clienteService) ListarMovimentosBonus(ctx context.Context, id uuid.UUID) ([]dto.MovimentoBonusResponse, error) {
	movs, err := s.repo.ListMovimentosBonus(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoBonusResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimentoBonusResponse{
			ID:        m.ID.String(),
			Tipo:      m.Tipo,
			Valor:     m.Valor,
			Descricao: m.Descricao,
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	resp := &dto.ClienteResponse{
		ID:         c.ID.String(),
		Nome:       c.Nome,
		CPF:        c.CPF,
		Telefone:   c.Telefone,
		Email:      c.Email,
		SaldoBonus: c.SaldoBonus,
		Logradouro: c.Logradouro,
		NumeroCasa: c.NumeroCasa,
		Ativo:      c.Ativo,
	}
	if c.BairroID != nil {
		bid := c.BairroID.String()
		resp.BairroID = &bid
	}
	return resp
}
