package service

import (
	"context"
	"errors"
	"strings"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CEPClient resolves a Brazilian postal code into an address prefill.
// The concrete client lives in infra and goes through the circuit breaker.
type CEPClient interface {
	Consultar(ctx context.Context, cep string) (*dto.CEPResponse, error)
}

type EnderecoService interface {
	CriarEstado(ctx context.Context, req dto.CriarEstadoRequest) (*dto.EstadoResponse, error)
	ListarEstados(ctx context.Context) ([]dto.EstadoResponse, error)
	CriarCidade(ctx context.Context, req dto.CriarCidadeRequest) (*dto.CidadeResponse, error)
	ListarCidades(ctx context.Context, estadoID uuid.UUID) ([]dto.CidadeResponse, error)
	CriarBairro(ctx context.Context, req dto.CriarBairroRequest) (*dto.BairroResponse, error)
	ListarBairros(ctx context.Context, cidadeID uuid.UUID) ([]dto.BairroResponse, error)
	ConsultarCEP(ctx context.Context, cep string) (*dto.CEPResponse, error)
}

type enderecoService struct {
	repo repository.EnderecoRepository
	cep  CEPClient
}

func NewEnderecoService(repo repository.EnderecoRepository, cep CEPClient) EnderecoService {
	return &enderecoService{repo: repo, cep: cep}
}

// FiltrarPorPai keeps the entries bound to a parent id. The cascading selects
// (estado → cidade → bairro) are parent-filtered queries server-side; this
// helper covers callers that already hold the full list in memory.
func FiltrarPorPai[T any](itens []T, paiDe func(T) uuid.UUID, paiID uuid.UUID) []T {
	out := make([]T, 0, len(itens))
	for _, item := range itens {
		if paiDe(item) == paiID {
			out = append(out, item)
		}
	}
	return out
}

func (s *enderecoService) CriarEstado(ctx context.Context, req dto.CriarEstadoRequest) (*dto.EstadoResponse, error) {
	e := &model.Estado{Nome: req.Nome, UF: strings.ToUpper(req.UF)}
	if err := s.repo.CreateEstado(ctx, e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return &dto.EstadoResponse{ID: e.ID.String(), Nome: e.Nome, UF: e.UF}, nil
}

func (s *enderecoService) ListarEstados(ctx context.Context) ([]dto.EstadoResponse, error) {
	estados, err := s.repo.ListEstados(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EstadoResponse, 0, len(estados))
	for _, e := range estados {
		out = append(out, dto.EstadoResponse{ID: e.ID.String(), Nome: e.Nome, UF: e.UF})
	}
	return out, nil
}

func (s *enderecoService) CriarCidade(ctx context.Context, req dto.CriarCidadeRequest) (*dto.CidadeResponse, error) {
	estadoID, err := uuid.Parse(req.EstadoID)
	if err != nil {
		return nil, ErrValorInvalido
	}
	c := &model.Cidade{Nome: req.Nome, EstadoID: estadoID}
	if err := s.repo.CreateCidade(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return &dto.CidadeResponse{ID: c.ID.String(), Nome: c.Nome, EstadoID: c.EstadoID.String()}, nil
}

func (s *enderecoService) ListarCidades(ctx context.Context, estadoID uuid.UUID) ([]dto.CidadeResponse, error) {
	cidades, err := s.repo.ListCidadesPorEstado(ctx, estadoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CidadeResponse, 0, len(cidades))
	for _, c := range cidades {
		out = append(out, dto.CidadeResponse{ID: c.ID.String(), Nome: c.Nome, EstadoID: c.EstadoID.String()})
	}
	return out, nil
}

func (s *enderecoService) CriarBairro(ctx context.Context, req dto.CriarBairroRequest) (*dto.BairroResponse, error) {
	cidadeID, err := uuid.Parse(req.CidadeID)
	if err != nil {
		return nil, ErrValorInvalido
	}
	b := &model.Bairro{Nome: req.Nome, CidadeID: cidadeID}
	if err := s.repo.CreateBairro(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return &dto.BairroResponse{ID: b.ID.String(), Nome: b.Nome, CidadeID: b.CidadeID.String()}, nil
}

func (s *enderecoService) ListarBairros(ctx context.Context, cidadeID uuid.UUID) ([]dto.BairroResponse, error) {
	bairros, err := s.repo.ListBairrosPorCidade(ctx, cidadeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BairroResponse, 0, len(bairros))
	for _, b := range bairros {
		out = append(out, dto.BairroResponse{ID: b.ID.String(), Nome: b.Nome, CidadeID: b.CidadeID.String()})
	}
	return out, nil
}

func (s *enderecoService) ConsultarCEP(ctx context.Context, cep string) (*dto.CEPResponse, error) {
	limpo := strings.ReplaceAll(strings.ReplaceAll(cep, "-", ""), ".", "")
	if len(limpo) != 8 {
		return nil, ErrValorInvalido
	}
	return s.cep.Consultar(ctx, limpo)
}
