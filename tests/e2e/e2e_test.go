//go:build integration

package e2e

// Testes de integração ponta a ponta com Postgres + Redis reais via testcontainers.
// Rodar com: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"estoquepos/internal/config"
	"estoquepos/internal/infra"
	"estoquepos/internal/router"
	"estoquepos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // JWT de administrador
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("estoquepos_test"),
		tcPostgres.WithUsername("estoquepos"),
		tcPostgres.WithPassword("estoquepos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		ViaCEPURL:          "http://localhost:9999", // não usado nos testes
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, infra.RunMigrations(db))

	// Semeia o administrador (senha: estoquepos2026, bcrypt custo 12)
	err = db.Exec(`INSERT INTO usuarios (id, username, nome, password_hash, perfil, ativo, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin.e2e', 'Admin E2E',
		        '$2a$12$6zcbRzN1cj4B7bqbIp.LOukxBkHZvhKFxrlDTqX61mzKFN7N0dJIi', 'administrador', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`).Error
	require.NoError(t, err)

	cepCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, cepCB, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin.e2e", "password": "estoquepos2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server: srv,
		token:  loginBody.AccessToken,
		engine: r,
	}
}

func criarProduto(t *testing.T, env *testEnv, nome, codigo string, precoVenda float64, estoque int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{
			"nome":          nome,
			"codigo":        codigo,
			"preco_custo":   precoVenda / 2,
			"preco_venda":   precoVenda,
			"estoque_atual": estoque,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func abrirCaixa(t *testing.T, env *testEnv, numero int, saldoInicial float64) string {
	t.Helper()
	criarResp := do(t, env.server, "POST", "/v1/caixas",
		jsonBody(t, map[string]any{
			"numero":        numero,
			"descricao":     "Caixa E2E",
			"saldo_inicial": saldoInicial,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, criarResp.StatusCode)
	var caixa struct {
		ID string `json:"id"`
	}
	decodeJSON(t, criarResp, &caixa)

	abrirResp := do(t, env.server, "POST", "/v1/caixas/"+caixa.ID+"/abrir", nil, env.token)
	require.Equal(t, http.StatusOK, abrirResp.StatusCode)
	abrirResp.Body.Close()
	return caixa.ID
}

// ── Testes ───────────────────────────────────────────────────────────────────

// Ciclo completo: login → caixa → venda → consulta → relatório.
func TestE2E_CicloCompletoDeVenda(t *testing.T) {
	env := setupTestEnv(t)

	prodID := criarProduto(t, env, "Refrigerante 500ml", "7890001000001", 6, 20)
	caixaID := abrirCaixa(t, env, 1, 1000)

	ventaResp := do(t, env.server, "POST", "/v1/operacoes",
		jsonBody(t, map[string]any{
			"caixa_id": caixaID,
			"tipo":     "venda",
			"itens":    []map[string]any{{"produto_id": prodID, "quantidade": 3}},
			"pagamentos": []map[string]any{
				{"metodo": "dinheiro", "valor": 20.0},
			},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var operacao struct {
		ID         string `json:"id"`
		Total      string `json:"total"`
		Troco      string `json:"troco"`
		SaldoCaixa string `json:"saldo_caixa"`
		Estado     string `json:"estado"`
	}
	decodeJSON(t, ventaResp, &operacao)
	assert.Equal(t, "registrada", operacao.Estado)
	assert.Equal(t, "18", operacao.Total)
	assert.Equal(t, "2", operacao.Troco)
	assert.Equal(t, "1018", operacao.SaldoCaixa)

	// estoque baixou
	prodResp := do(t, env.server, "GET", "/v1/produtos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		EstoqueAtual int `json:"estoque_atual"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 17, prod.EstoqueAtual)

	// relatório do caixa enxerga a operação
	relResp := do(t, env.server, "GET", "/v1/caixas/"+caixaID+"/relatorio", nil, env.token)
	require.Equal(t, http.StatusOK, relResp.StatusCode)
	var rel struct {
		TotalVendas      string `json:"total_vendas"`
		QuantidadeVendas int    `json:"quantidade_vendas"`
	}
	decodeJSON(t, relResp, &rel)
	assert.Equal(t, "18", rel.TotalVendas)
	assert.Equal(t, 1, rel.QuantidadeVendas)
}

// Cancelar devolve o estoque e o saldo do caixa.
func TestE2E_CancelarReverteEstoqueESaldo(t *testing.T) {
	env := setupTestEnv(t)

	prodID := criarProduto(t, env, "Leite 1L", "7890001000002", 8, 10)
	caixaID := abrirCaixa(t, env, 1, 500)

	ventaResp := do(t, env.server, "POST", "/v1/operacoes",
		jsonBody(t, map[string]any{
			"caixa_id":   caixaID,
			"tipo":       "venda",
			"itens":      []map[string]any{{"produto_id": prodID, "quantidade": 4}},
			"pagamentos": []map[string]any{{"metodo": "pix", "valor": 32.0}},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var operacao struct {
		ID string `json:"id"`
	}
	decodeJSON(t, ventaResp, &operacao)

	cancelResp := do(t, env.server, "DELETE", "/v1/operacoes/"+operacao.ID,
		jsonBody(t, map[string]any{"motivo": "Erro de digitação no teste"}), env.token)
	assert.Equal(t, http.StatusNoContent, cancelResp.StatusCode)
	cancelResp.Body.Close()

	prodResp := do(t, env.server, "GET", "/v1/produtos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		EstoqueAtual int `json:"estoque_atual"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 10, prod.EstoqueAtual)

	caixaResp := do(t, env.server, "GET", "/v1/caixas/"+caixaID, nil, env.token)
	require.Equal(t, http.StatusOK, caixaResp.StatusCode)
	var caixa struct {
		SaldoAtual string `json:"saldo_atual"`
	}
	decodeJSON(t, caixaResp, &caixa)
	assert.Equal(t, "500", caixa.SaldoAtual)

	// cancelar de novo é conflito
	denovo := do(t, env.server, "DELETE", "/v1/operacoes/"+operacao.ID,
		jsonBody(t, map[string]any{"motivo": "Cancelamento repetido"}), env.token)
	assert.Equal(t, http.StatusConflict, denovo.StatusCode)
	denovo.Body.Close()
}

// Venda com resgate de bônus debita o saldo do cliente.
func TestE2E_VendaComBonus(t *testing.T) {
	env := setupTestEnv(t)

	prodID := criarProduto(t, env, "Café 500g", "7890001000003", 20, 30)
	caixaID := abrirCaixa(t, env, 1, 300)

	clienteResp := do(t, env.server, "POST", "/v1/clientes",
		jsonBody(t, map[string]any{"nome": "Cliente E2E", "cpf": "12345678901"}), env.token)
	require.Equal(t, http.StatusCreated, clienteResp.StatusCode)
	var cliente struct {
		ID string `json:"id"`
	}
	decodeJSON(t, clienteResp, &cliente)

	bonusResp := do(t, env.server, "POST", "/v1/clientes/"+cliente.ID+"/bonus",
		jsonBody(t, map[string]any{"valor": 15.0, "descricao": "Campanha E2E"}), env.token)
	require.Equal(t, http.StatusOK, bonusResp.StatusCode)
	bonusResp.Body.Close()

	ventaResp := do(t, env.server, "POST", "/v1/operacoes",
		jsonBody(t, map[string]any{
			"caixa_id":   caixaID,
			"tipo":       "venda",
			"cliente_id": cliente.ID,
			"itens":      []map[string]any{{"produto_id": prodID, "quantidade": 1}},
			"pagamentos": []map[string]any{
				{"metodo": "bonus", "valor": 10.0},
				{"metodo": "dinheiro", "valor": 10.0},
			},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	ventaResp.Body.Close()

	detalheResp := do(t, env.server, "GET", "/v1/clientes/"+cliente.ID, nil, env.token)
	require.Equal(t, http.StatusOK, detalheResp.StatusCode)
	var detalhe struct {
		SaldoBonus string `json:"saldo_bonus"`
	}
	decodeJSON(t, detalheResp, &detalhe)
	assert.Equal(t, "5", detalhe.SaldoBonus)
}

// Pagamento insuficiente é recusado e nada muda.
func TestE2E_PagamentoInsuficiente(t *testing.T) {
	env := setupTestEnv(t)

	prodID := criarProduto(t, env, "Azeite 500ml", "7890001000004", 30, 5)
	caixaID := abrirCaixa(t, env, 1, 100)

	ventaResp := do(t, env.server, "POST", "/v1/operacoes",
		jsonBody(t, map[string]any{
			"caixa_id":   caixaID,
			"tipo":       "venda",
			"itens":      []map[string]any{{"produto_id": prodID, "quantidade": 2}},
			"pagamentos": []map[string]any{{"metodo": "dinheiro", "valor": 40.0}},
		}),
		env.token,
	)
	assert.Equal(t, http.StatusUnprocessableEntity, ventaResp.StatusCode)
	ventaResp.Body.Close()

	prodResp := do(t, env.server, "GET", "/v1/produtos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		EstoqueAtual int `json:"estoque_atual"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 5, prod.EstoqueAtual)
}

// Consulta pública de preço funciona sem token e popula o cache.
func TestE2E_ConsultaPrecoPublica(t *testing.T) {
	env := setupTestEnv(t)

	criarProduto(t, env, "Biscoito 200g", "7890001000005", 4.5, 12)

	for i := 0; i < 2; i++ { // segunda chamada sai do cache
		resp := do(t, env.server, "GET", "/v1/preco/7890001000005", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var preco struct {
			Nome       string `json:"nome"`
			PrecoVenda string `json:"preco_venda"`
		}
		decodeJSON(t, resp, &preco)
		assert.Equal(t, "Biscoito 200g", preco.Nome)
		assert.Equal(t, "4.5", preco.PrecoVenda)
	}

	naoExiste := do(t, env.server, "GET", "/v1/preco/000", nil, "")
	assert.Equal(t, http.StatusNotFound, naoExiste.StatusCode)
	naoExiste.Body.Close()
}

// Abrir de novo zera a sessão mas mantém o saldo acumulado.
func TestE2E_ReaberturaDeCaixa(t *testing.T) {
	env := setupTestEnv(t)

	prodID := criarProduto(t, env, "Sabão em pó 1kg", "7890001000006", 10, 50)
	caixaID := abrirCaixa(t, env, 1, 200)

	ventaResp := do(t, env.server, "POST", "/v1/operacoes",
		jsonBody(t, map[string]any{
			"caixa_id":   caixaID,
			"tipo":       "venda",
			"itens":      []map[string]any{{"produto_id": prodID, "quantidade": 5}},
			"pagamentos": []map[string]any{{"metodo": "cartao_debito", "valor": 50.0}},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	ventaResp.Body.Close()

	fecharResp := do(t, env.server, "POST", "/v1/caixas/"+caixaID+"/fechar", nil, env.token)
	require.Equal(t, http.StatusOK, fecharResp.StatusCode)
	fecharResp.Body.Close()

	reabrirResp := do(t, env.server, "POST", "/v1/caixas/"+caixaID+"/abrir", nil, env.token)
	require.Equal(t, http.StatusOK, reabrirResp.StatusCode)
	var caixa struct {
		Estado     string `json:"estado"`
		SaldoAtual string `json:"saldo_atual"`
	}
	decodeJSON(t, reabrirResp, &caixa)
	assert.Equal(t, "aberto", caixa.Estado)
	assert.Equal(t, "250", caixa.SaldoAtual)

	// o histórico da sessão anterior foi limpo
	relResp := do(t, env.server, "GET", "/v1/caixas/"+caixaID+"/relatorio", nil, env.token)
	require.Equal(t, http.StatusOK, relResp.StatusCode)
	var rel struct {
		QuantidadeVendas int `json:"quantidade_vendas"`
	}
	decodeJSON(t, relResp, &rel)
	assert.Equal(t, 0, rel.QuantidadeVendas)
}
