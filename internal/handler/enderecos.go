package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnderecosHandler struct{ svc service.EnderecoService }

func NewEnderecosHandler(svc service.EnderecoService) *EnderecosHandler {
	return &EnderecosHandler{svc: svc}
}

// CriarEstado godoc
// @Summary Cadastra um estado
// @Tags enderecos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarEstadoRequest true "Nome e UF"
// @Success 201 {object} dto.EstadoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/estados [post]
func (h *EnderecosHandler) CriarEstado(c *gin.Context) {
	var req dto.CriarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarEstado(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarEstados godoc
// @Summary Lista estados
// @Tags enderecos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EstadoResponse
// @Router /v1/estados [get]
func (h *EnderecosHandler) ListarEstados(c *gin.Context) {
	resp, err := h.svc.ListarEstados(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar estados"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CriarCidade godoc
// @Summary Cadastra uma cidade
// @Tags enderecos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarCidadeRequest true "Nome e estado"
// @Success 201 {object} dto.CidadeResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cidades [post]
func (h *EnderecosHandler) CriarCidade(c *gin.Context) {
	var req dto.CriarCidadeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarCidade(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCidades godoc
// @Summary Lista cidades de um estado
// @Tags enderecos
// @Produce json
// @Security BearerAuth
// @Param estado_id query string true "UUID do estado"
// @Success 200 {array} dto.CidadeResponse
// @Router /v1/cidades [get]
func (h *EnderecosHandler) ListarCidades(c *gin.Context) {
	estadoID, err := uuid.Parse(c.Query("estado_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("estado_id inválido"))
		return
	}
	resp, err := h.svc.ListarCidades(c.Request.Context(), estadoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar cidades"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CriarBairro godoc
// @Summary Cadastra um bairro
// @Tags enderecos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarBairroRequest true "Nome e cidade"
// @Success 201 {object} dto.BairroResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/bairros [post]
func (h *EnderecosHandler) CriarBairro(c *gin.Context) {
	var req dto.CriarBairroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarBairro(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarBairros godoc
// @Summary Lista bairros de uma cidade
// @Tags enderecos
// @Produce json
// @Security BearerAuth
// @Param cidade_id query string true "UUID da cidade"
// @Success 200 {array} dto.BairroResponse
// @Router /v1/bairros [get]
func (h *EnderecosHandler) ListarBairros(c *gin.Context) {
	cidadeID, err := uuid.Parse(c.Query("cidade_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cidade_id inválido"))
		return
	}
	resp, err := h.svc.ListarBairros(c.Request.Context(), cidadeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar bairros"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConsultarCEP godoc
// @Summary Consulta um CEP
// @Description Resolve o CEP no serviço ViaCEP e devolve o endereço para preenchimento de cadastro.
// @Tags enderecos
// @Produce json
// @Security BearerAuth
// @Param cep path string true "CEP com 8 dígitos"
// @Success 200 {object} dto.CEPResponse
// @Failure 404 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/cep/{cep} [get]
func (h *EnderecosHandler) ConsultarCEP(c *gin.Context) {
	resp, err := h.svc.ConsultarCEP(c.Request.Context(), c.Param("cep"))
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
