package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"estoquepos/internal/dto"
)

// viaCEPResponse is the raw payload of the public ViaCEP webservice.
type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// CEPClient queries ViaCEP for address prefill. All calls go through the
// circuit breaker so an upstream outage fast-fails instead of stalling the
// registration form.
type CEPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

func NewCEPClient(baseURL string, breaker *CircuitBreaker) *CEPClient {
	return &CEPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		breaker:    breaker,
	}
}

// Breaker exposes the breaker for the health endpoint.
func (c *CEPClient) Breaker() *CircuitBreaker { return c.breaker }

// Consultar resolves a cleaned 8-digit CEP.
func (c *CEPClient) Consultar(ctx context.Context, cep string) (*dto.CEPResponse, error) {
	var out *dto.CEPResponse
	err := c.breaker.Execute(func() error {
		url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("cep: create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("cep: upstream unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("cep: upstream returned %d", resp.StatusCode)
		}

		var raw viaCEPResponse
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return fmt.Errorf("cep: decode response: %w", err)
		}
		if raw.Erro {
			return fmt.Errorf("cep: %s não encontrado", cep)
		}

		out = &dto.CEPResponse{
			CEP:        raw.CEP,
			Logradouro: raw.Logradouro,
			Bairro:     raw.Bairro,
			Cidade:     raw.Localidade,
			UF:         raw.UF,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
