package handler

import (
	"net/http"

	"estoquepos/internal/apierror"
	"estoquepos/internal/dto"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Autentica um usuário
// @Description Valida as credenciais e emite access e refresh tokens JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 429 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		log.Warn().Str("username", req.Username).Str("ip", c.ClientIP()).Msg("login recusado")
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Renova o access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CriarUsuario godoc
// @Summary Cadastra um usuário
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarUsuarioRequest true "Dados do usuário"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/usuarios [post]
func (h *AuthHandler) CriarUsuario(c *gin.Context) {
	var req dto.CriarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarUsuario(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarUsuarios godoc
// @Summary Lista os usuários
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UsuarioResponse
// @Router /v1/usuarios [get]
func (h *AuthHandler) ListarUsuarios(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar usuários"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarUsuario godoc
// @Summary Atualiza um usuário
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do usuário"
// @Param body body dto.AtualizarUsuarioRequest true "Campos a atualizar"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/usuarios/{id} [put]
func (h *AuthHandler) AtualizarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesativarUsuario godoc
// @Summary Desativa um usuário
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do usuário"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/usuarios/{id} [delete]
func (h *AuthHandler) DesativarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesativarUsuario(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
