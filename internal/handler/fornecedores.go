package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FornecedoresHandler struct{ svc service.FornecedorService }

func NewFornecedoresHandler(svc service.FornecedorService) *FornecedoresHandler {
	return &FornecedoresHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um fornecedor
// @Tags fornecedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarFornecedorRequest true "Dados do fornecedor"
// @Success 201 {object} dto.FornecedorResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/fornecedores [post]
func (h *FornecedoresHandler) Criar(c *gin.Context) {
	var req dto.CriarFornecedorRequest
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
// @Summary Lista fornecedores
// @Tags fornecedores
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Busca por razão social ou CNPJ"
// @Param incluir_inativos query bool false "Inclui fornecedores desativados"
// @Success 200 {array} dto.FornecedorResponse
// @Router /v1/fornecedores [get]
func (h *FornecedoresHandler) Listar(c *gin.Context) {
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("busca"), incluirInativos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar fornecedores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Consulta um fornecedor
// @Tags fornecedores
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do fornecedor"
// @Success 200 {object} dto.FornecedorResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/fornecedores/{id} [get]
func (h *FornecedoresHandler) Obter(c *gin.Context) {
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
// @Summary Atualiza um fornecedor
// @Tags fornecedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do fornecedor"
// @Param body body dto.CriarFornecedorRequest true "Dados do fornecedor"
// @Success 200 {object} dto.FornecedorResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/fornecedores/{id} [put]
func (h *FornecedoresHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CriarFornecedorRequest
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

// Desativar godoc
// @Summary Desativa um fornecedor
// @Tags fornecedores
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do fornecedor"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/fornecedores/{id} [delete]
func (h *FornecedoresHandler) Desativar(c *gin.Context) {
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
