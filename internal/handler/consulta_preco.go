package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precoCacheTTL = 4 * time.Hour

// ConsultaPrecoHandler serves the public price check endpoint.
// No authentication required and no side effects.
type ConsultaPrecoHandler struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewConsultaPrecoHandler(repo repository.ProdutoRepository, rdb *redis.Client) *ConsultaPrecoHandler {
	return &ConsultaPrecoHandler{repo: repo, rdb: rdb}
}

// GetPrecoPorCodigo godoc
// @Summary Consulta de preço por código (sem autenticação)
// @Tags preco
// @Produce json
// @Param codigo path string true "Código do produto"
// @Success 200 {object} dto.ConsultaPrecoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/preco/{codigo} [get]
func (h *ConsultaPrecoHandler) GetPrecoPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "preco:" + codigo

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	produto, err := h.repo.FindByCodigo(ctx, codigo)
	if err != nil || !produto.Ativo {
		c.JSON(http.StatusNotFound, apierror.New("Produto não encontrado"))
		return
	}

	resp := dto.ConsultaPrecoResponse{
		Nome:              produto.Nome,
		PrecoVenda:        produto.PrecoVenda,
		EstoqueDisponivel: produto.EstoqueAtual,
	}
	if produto.Categoria != nil {
		resp.Categoria = &produto.Categoria.Nome
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
