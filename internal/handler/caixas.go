package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixasHandler struct{ svc service.CaixaService }

func NewCaixasHandler(svc service.CaixaService) *CaixasHandler { return &CaixasHandler{svc: svc} }

// Criar godoc
// @Summary Cadastra um novo caixa
// @Tags caixas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarCaixaRequest true "Dados do caixa"
// @Success 201 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixas [post]
func (h *CaixasHandler) Criar(c *gin.Context) {
	var req dto.CriarCaixaRequest
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
// @Summary Lista todos os caixas
// @Tags caixas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CaixaResponse
// @Router /v1/caixas [get]
func (h *CaixasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar caixas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Consulta um caixa
// @Tags caixas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do caixa"
// @Success 200 {object} dto.CaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixas/{id} [get]
func (h *CaixasHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Abre o caixa
// @Description Abre o caixa para operações. A abertura limpa o histórico da sessão anterior e mantém o saldo corrente.
// @Tags caixas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do caixa"
// @Success 200 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixas/{id}/abrir [post]
func (h *CaixasHandler) Abrir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Fechar godoc
// @Summary Fecha o caixa
// @Tags caixas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do caixa"
// @Success 200 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixas/{id}/fechar [post]
func (h *CaixasHandler) Fechar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sangria godoc
// @Summary Registra uma sangria (retirada manual)
// @Tags caixas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do caixa"
// @Param body body dto.MovimentoCaixaRequest true "Valor e descrição"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixas/{id}/sangria [post]
func (h *CaixasHandler) Sangria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.MovimentoCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Sangria(c.Request.Context(), id, req); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Suprimento godoc
// @Summary Registra um suprimento (reforço manual)
// @Tags caixas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do caixa"
// @Param body body dto.MovimentoCaixaRequest true "Valor e descrição"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixas/{id}/suprimento [post]
func (h *CaixasHandler) Suprimento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.MovimentoCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Suprimento(c.Request.Context(), id, req); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Relatorio godoc
// @Summary Relatório da sessão do caixa
// @Description Saldo corrente, totais por método de pagamento, operações e movimentos manuais.
// @Tags caixas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do caixa"
// @Success 200 {object} dto.RelatorioCaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixas/{id}/relatorio [get]
func (h *CaixasHandler) Relatorio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Relatorio(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
