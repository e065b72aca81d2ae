package service

import (
	"context"
	"errors"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FornecedorService interface {
	Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error)
	Listar(ctx context.Context, busca string, incluirInativos bool) ([]dto.FornecedorResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type fornecedorService struct {
	repo repository.FornecedorRepository
}

func NewFornecedorService(repo repository.FornecedorRepository) FornecedorService {
	return &fornecedorService{repo: repo}
}

func (s *fornecedorService) Criar(ctx context.Context, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f := &model.Fornecedor{
		RazaoSocial: req.RazaoSocial,
		CNPJ:        req.CNPJ,
		Telefone:    req.Telefone,
		Email:       req.Email,
		Logradouro:  req.Logradouro,
		Ativo:       true,
	}
	if req.BairroID != nil {
		id, err := uuid.Parse(*req.BairroID)
		if err != nil {
			return nil, ErrValorInvalido
		}
		f.BairroID = &id
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Listar(ctx context.Context, busca string, incluirInativos bool) ([]dto.FornecedorResponse, error) {
	fornecedores, err := s.repo.List(ctx, busca, incluirInativos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FornecedorResponse, 0, len(fornecedores))
	for i := range fornecedores {
		out = append(out, *fornecedorToResponse(&fornecedores[i]))
	}
	return out, nil
}

func (s *fornecedorService) Atualizar(ctx context.Context, id uuid.UUID, req dto.CriarFornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	f.RazaoSocial = req.RazaoSocial
	f.Telefone = req.Telefone
	f.Email = req.Email
	f.Logradouro = req.Logradouro
	if req.BairroID != nil {
		bid, err := uuid.Parse(*req.BairroID)
		if err != nil {
			return nil, ErrValorInvalido
		}
		f.BairroID = &bid
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return fornecedorToResponse(f), nil
}

func (s *fornecedorService) Desativar(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNaoEncontrado
	}
	f.Ativo = false
	return s.repo.Update(ctx, f)
}

func fornecedorToResponse(f *model.Fornecedor) *dto.FornecedorResponse {
	resp := &dto.FornecedorResponse{
		ID:          f.ID.String(),
		RazaoSocial: f.RazaoSocial,
		CNPJ:        f.CNPJ,
		Telefone:    f.Telefone,
		Email:       f.Email,
		Logradouro:  f.Logradouro,
		Ativo:       f.Ativo,
	}
	if f.BairroID != nil {
		bid := f.BairroID.String()
		resp.BairroID = &bid
	}
	return resp
}
