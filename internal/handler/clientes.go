package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarClienteRequest true "Dados do cliente"
// @Success 201 {object} dto.ClienteResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/clientes [post]
func (h *ClientesHandler) Criar(c *gin.Context) {
	var req dto.CriarClienteRequest
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
// @Summary Lista clientes
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Busca por nome ou CPF"
// @Param incluir_inativos query bool false "Inclui clientes desativados"
// @Success 200 {array} dto.ClienteResponse
// @Router /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("busca"), incluirInativos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Consulta um cliente
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do cliente"
// @Success 200 {object} dto.ClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [get]
func (h *ClientesHandler) Obter(c *gin.Context) {
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
// @Summary Atualiza um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do cliente"
// @Param body body dto.CriarClienteRequest true "Dados do cliente"
// @Success 200 {object} dto.ClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [put]
func (h *ClientesHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CriarClienteRequest
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
// @Summary Desativa um cliente
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do cliente"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [delete]
func (h *ClientesHandler) Desativar(c *gin.Context) {
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

// ConcederBonus godoc
// @Summary Concede bônus a um cliente
// @Description Credita o valor ao saldo de bônus e registra o movimento no extrato.
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do cliente"
// @Param body body dto.ConcederBonusRequest true "Valor e descrição"
// @Success 200 {object} dto.ClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id}/bonus [post]
func (h *ClientesHandler) ConcederBonus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ConcederBonusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConcederBonus(c.Request.Context(), id, req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MovimentosBonus godoc
// @Summary Extrato de bônus do cliente
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do cliente"
// @Success 200 {array} dto.MovimentoBonusResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id}/bonus [get]
func (h *ClientesHandler) MovimentosBonus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ListarMovimentosBonus(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
