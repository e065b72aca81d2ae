package service

import (
	"context"
	"errors"
	"fmt"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	CriarCategoria(ctx context.Context, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error)
	ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, rdb: rdb}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if req.PrecoVenda.IsNegative() || req.PrecoCusto.IsNegative() {
		return nil, ErrValorInvalido
	}
	p := &model.Produto{
		Codigo:        req.Codigo,
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		PrecoCusto:    req.PrecoCusto,
		PrecoVenda:    req.PrecoVenda,
		EstoqueAtual:  req.EstoqueAtual,
		EstoqueMinimo: req.EstoqueMinimo,
		UnidadeMedida: req.UnidadeMedida,
		Ativo:         true,
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		p.CategoriaID = &id
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		items = append(items, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	if req.Nome != "" {
		p.Nome = req.Nome
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id inválido: %w", err)
		}
		p.CategoriaID = &cid
	}
	if !req.PrecoCusto.IsZero() {
		p.PrecoCusto = req.PrecoCusto
	}
	if !req.PrecoVenda.IsZero() {
		p.PrecoVenda = req.PrecoVenda
	}
	if req.EstoqueMinimo != nil {
		p.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.UnidadeMedida != "" {
		p.UnidadeMedida = req.UnidadeMedida
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCachePreco(ctx, p.Codigo)
	return produtoToResponse(p), nil
}

func (s *produtoService) AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjustarEstoqueRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	if p.EstoqueAtual+req.Quantidade < 0 {
		return nil, ErrEstoqueInsuficiente
	}

	anterior := p.EstoqueAtual
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstoqueTx(ctx, tx, id, req.Quantidade); err != nil {
			return err
		}
		mov := &model.MovimentoEstoque{
			ProdutoID:       id,
			Tipo:            "ajuste",
			Quantidade:      req.Quantidade,
			EstoqueAnterior: anterior,
			EstoqueNovo:     anterior + req.Quantidade,
			Motivo:          req.Motivo,
		}
		return s.repo.CreateMovimentoEstoqueTx(ctx, tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	p.EstoqueAtual = anterior + req.Quantidade
	s.invalidarCachePreco(ctx, p.Codigo)
	return produtoToResponse(p), nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNaoEncontrado
	}
	p.Ativo = false
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidarCachePreco(ctx, p.Codigo)
	return nil
}

func (s *produtoService) CriarCategoria(ctx context.Context, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c := &model.Categoria{Nome: req.Nome, Ativo: true}
	if err := s.repo.CreateCategoria(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicado
		}
		return nil, err
	}
	return &dto.CategoriaResponse{ID: c.ID.String(), Nome: c.Nome, Ativo: c.Ativo}, nil
}

func (s *produtoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, dto.CategoriaResponse{ID: c.ID.String(), Nome: c.Nome, Ativo: c.Ativo})
	}
	return out, nil
}

// invalidarCachePreco drops the public price cache entry. Best effort.
func (s *produtoService) invalidarCachePreco(ctx context.Context, codigo string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, "preco:"+codigo).Err()
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	resp := &dto.ProdutoResponse{
		ID:            p.ID.String(),
		Codigo:        p.Codigo,
		Nome:          p.Nome,
		Descricao:     p.Descricao,
		PrecoCusto:    p.PrecoCusto,
		PrecoVenda:    p.PrecoVenda,
		EstoqueAtual:  p.EstoqueAtual,
		EstoqueMinimo: p.EstoqueMinimo,
		UnidadeMedida: p.UnidadeMedida,
		Ativo:         p.Ativo,
	}
	if p.CategoriaID != nil {
		cid := p.CategoriaID.String()
		resp.CategoriaID = &cid
	}
	if p.Categoria != nil {
		resp.Categoria = &p.Categoria.Nome
	}
	return resp
}
