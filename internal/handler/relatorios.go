package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// VendasPorDia godoc
// @Summary Vendas agregadas por dia
// @Description Total e quantidade de vendas registradas por dia dentro da janela (default: últimos 30 dias).
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param data_inicio query string false "Data inicial YYYY-MM-DD"
// @Param data_fim query string false "Data final YYYY-MM-DD"
// @Success 200 {object} dto.RelatorioVendasResponse
// @Router /v1/relatorios/vendas-por-dia [get]
func (h *RelatoriosHandler) VendasPorDia(c *gin.Context) {
	var filter dto.RelatorioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.VendasPorDia(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar relatório"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PagamentosPorMetodo godoc
// @Summary Pagamentos de venda agregados por método
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param data_inicio query string false "Data inicial YYYY-MM-DD"
// @Param data_fim query string false "Data final YYYY-MM-DD"
// @Success 200 {object} dto.RelatorioPagamentosResponse
// @Router /v1/relatorios/pagamentos-por-metodo [get]
func (h *RelatoriosHandler) PagamentosPorMetodo(c *gin.Context) {
	var filter dto.RelatorioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.PagamentosPorMetodo(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar relatório"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
