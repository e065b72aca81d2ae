package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CriarUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3"`
	Nome     string  `json:"nome"     validate:"required,min=3"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=4"`
	Perfil   string  `json:"perfil"   validate:"required,oneof=operador supervisor administrador"`
}

type AtualizarUsuarioRequest struct {
	Nome     string  `json:"nome"     validate:"omitempty,min=3"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"omitempty,min=4"`
	Perfil   string  `json:"perfil"   validate:"omitempty,oneof=operador supervisor administrador"`
}

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nome     string  `json:"nome"`
	Email    *string `json:"email,omitempty"`
	Perfil   string  `json:"perfil"`
	Ativo    bool    `json:"ativo"`
}
