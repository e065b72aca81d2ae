package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/middleware"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OperacoesHandler struct{ svc service.OperacaoService }

func NewOperacoesHandler(svc service.OperacaoService) *OperacoesHandler {
	return &OperacoesHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registra uma operação (venda ou compra)
// @Description  Commit ACID: grava itens e pagamentos, move estoque, debita bônus e aplica o delta no saldo do caixa. Despacha a geração do recibo de forma assíncrona.
// @Tags         operacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarOperacaoRequest true "Detalhe da operação"
// @Success      201  {object} dto.OperacaoResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/operacoes [post]
func (h *OperacoesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarOperacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Editar godoc
// @Summary      Edita e recommita uma operação
// @Description  Substitui itens e pagamentos; o saldo do caixa move apenas pela diferença entre os totais.
// @Tags         operacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da operação"
// @Param        body body dto.RegistrarOperacaoRequest true "Novo detalhe da operação"
// @Success      200  {object} dto.OperacaoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/operacoes/{id} [put]
func (h *OperacoesHandler) Editar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarOperacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Editar(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancela uma operação
// @Description  Restaura estoque, estorna bônus e reverte o efeito no saldo do caixa.
// @Tags         operacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da operação"
// @Param        body body dto.CancelarOperacaoRequest true "Motivo do cancelamento"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/operacoes/{id} [delete]
func (h *OperacoesHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelarOperacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id, req.Motivo); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Obter godoc
// @Summary      Consulta uma operação
// @Tags         operacoes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da operação"
// @Success      200 {object} dto.OperacaoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/operacoes/{id} [get]
func (h *OperacoesHandler) Obter(c *gin.Context) {
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

// Listar godoc
// @Summary      Lista operações
// @Description  Retorna lista paginada filtrada por caixa, data, tipo e estado.
// @Tags         operacoes
// @Produce      json
// @Security     BearerAuth
// @Param        caixa_id query string false "UUID do caixa"
// @Param        data     query string false "Data YYYY-MM-DD (default: hoje)"
// @Param        tipo     query string false "venda | compra | all"
// @Param        estado   query string false "registrada | cancelada | all"
// @Param        page     query int    false "Página (default 1)"
// @Param        limit    query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.OperacaoListResponse
// @Router       /v1/operacoes [get]
func (h *OperacoesHandler) Listar(c *gin.Context) {
	var filter dto.OperacaoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar operações"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
