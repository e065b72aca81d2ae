package dto

type EstadoResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	UF   string `json:"uf"`
}

type CidadeResponse struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	EstadoID string `json:"estado_id"`
}

type BairroResponse struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	CidadeID string `json:"cidade_id"`
}

type CriarEstadoRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
	UF   string `json:"uf"   validate:"required,len=2"`
}

type CriarCidadeRequest struct {
	Nome     string `json:"nome"      validate:"required,min=2"`
	EstadoID string `json:"estado_id" validate:"required,uuid"`
}

type CriarBairroRequest struct {
	Nome     string `json:"nome"      validate:"required,min=2"`
	CidadeID string `json:"cidade_id" validate:"required,uuid"`
}

// CEPResponse is the address prefill returned by the external ViaCEP lookup.
type CEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}
