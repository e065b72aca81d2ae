package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarProdutoRequest true "Dados do produto"
// @Success 201 {object} dto.ProdutoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista produtos
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Busca por nome ou código"
// @Param categoria_id query string false "UUID da categoria"
// @Param incluir_inativos query bool false "Inclui produtos desativados"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.ProdutoListResponse
// @Router /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Consulta um produto
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do produto"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [get]
func (h *ProdutosHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do produto"
// @Param body body dto.AtualizarProdutoRequest true "Campos a atualizar"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [put]
func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjustarEstoque godoc
// @Summary Ajusta o estoque de um produto
// @Description Aplica um delta manual (positivo ou negativo) ao estoque e registra o movimento com o motivo informado.
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do produto"
// @Param body body dto.AjustarEstoqueRequest true "Delta e motivo"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/produtos/{id}/ajustar-estoque [post]
func (h *ProdutosHandler) AjustarEstoque(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarEstoque(c.Request.Context(), id, req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary Desativa um produto
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do produto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [delete]
func (h *ProdutosHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CriarCategoria godoc
// @Summary Cadastra uma categoria de produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarCategoriaRequest true "Nome da categoria"
// @Success 201 {object} dto.CategoriaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/categorias [post]
func (h *ProdutosHandler) CriarCategoria(c *gin.Context) {
	var req dto.CriarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarCategoria(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCategorias godoc
// @Summary Lista categorias de produto
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoriaResponse
// @Router /v1/categorias [get]
func (h *ProdutosHandler) ListarCategorias(c *gin.Context) {
	resp, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar categorias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
