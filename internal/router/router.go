package router

import (
	"time"

	"estoquepos/internal/config"
	"estoquepos/internal/handler"
	"estoquepos/internal/infra"
	"estoquepos/internal/middleware"
	"estoquepos/internal/repository"
	"estoquepos/internal/service"
	"estoquepos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, cepCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	cepClient := infra.NewCEPClient(cfg.ViaCEPURL, cepCB)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	operacaoRepo := repository.NewOperacaoRepository(db)
	enderecoRepo := repository.NewEnderecoRepository(db)
	relatorioRepo := repository.NewRelatorioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, rdb)
	clienteSvc := service.NewClienteService(clienteRepo)
	fornecedorSvc := service.NewFornecedorService(fornecedorRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, operacaoRepo)
	operacaoSvc := service.NewOperacaoService(operacaoRepo, caixaSvc, caixaRepo, produtoRepo, clienteRepo, dispatcher)
	enderecoSvc := service.NewEnderecoService(enderecoRepo, cepClient)
	relatorioSvc := service.NewRelatorioService(relatorioRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	fornecedoresH := handler.NewFornecedoresHandler(fornecedorSvc)
	caixasH := handler.NewCaixasHandler(caixaSvc)
	operacoesH := handler.NewOperacoesHandler(operacaoSvc)
	enderecosH := handler.NewEnderecosHandler(enderecoSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)
	consultaH := handler.NewConsultaPrecoHandler(produtoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, cepCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/preco/:codigo", consultaH.GetPrecoPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, supervisor, administrador — declared per-endpoint
		todos := middleware.RequireRole("operador", "supervisor", "administrador")
		gestao := middleware.RequireRole("supervisor", "administrador")
		admin := middleware.RequireRole("administrador")

		// Operações — registro aberto a todos, edição e cancelamento a gestão
		v1.POST("/operacoes", todos, operacoesH.Registrar)
		v1.GET("/operacoes", todos, operacoesH.Listar)
		v1.GET("/operacoes/:id", todos, operacoesH.Obter)
		v1.PUT("/operacoes/:id", gestao, operacoesH.Editar)
		v1.DELETE("/operacoes/:id", gestao, operacoesH.Cancelar)

		// Caixas — criação é administrador; o dia a dia é de todos
		v1.POST("/caixas", admin, caixasH.Criar)
		v1.GET("/caixas", todos, caixasH.Listar)
		v1.GET("/caixas/:id", todos, caixasH.Obter)
		v1.POST("/caixas/:id/abrir", todos, caixasH.Abrir)
		v1.POST("/caixas/:id/fechar", todos, caixasH.Fechar)
		v1.POST("/caixas/:id/sangria", gestao, caixasH.Sangria)
		v1.POST("/caixas/:id/suprimento", gestao, caixasH.Suprimento)
		v1.GET("/caixas/:id/relatorio", todos, caixasH.Relatorio)

		// Produtos — leitura para todos, escrita para administrador
		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/:id", todos, produtosH.Obter)
		v1.POST("/produtos/:id/ajustar-estoque", gestao, produtosH.AjustarEstoque)
		prods := v1.Group("/produtos", admin)
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
		}

		// Categorias
		v1.GET("/categorias", todos, produtosH.ListarCategorias)
		v1.POST("/categorias", admin, produtosH.CriarCategoria)

		// Clientes — bônus manual é de gestão
		v1.GET("/clientes", todos, clientesH.Listar)
		v1.GET("/clientes/:id", todos, clientesH.Obter)
		v1.POST("/clientes", todos, clientesH.Criar)
		v1.PUT("/clientes/:id", todos, clientesH.Atualizar)
		v1.DELETE("/clientes/:id", gestao, clientesH.Desativar)
		v1.POST("/clientes/:id/bonus", gestao, clientesH.ConcederBonus)
		v1.GET("/clientes/:id/bonus", todos, clientesH.MovimentosBonus)

		forn := v1.Group("/fornecedores", gestao)
		{
			forn.POST("", fornecedoresH.Criar)
			forn.GET("", fornecedoresH.Listar)
			forn.GET("/:id", fornecedoresH.Obter)
			forn.PUT("/:id", fornecedoresH.Atualizar)
			forn.DELETE("/:id", fornecedoresH.Desativar)
		}

		// Endereços — cadastro em cascata estado → cidade → bairro
		v1.GET("/estados", todos, enderecosH.ListarEstados)
		v1.POST("/estados", admin, enderecosH.CriarEstado)
		v1.GET("/cidades", todos, enderecosH.ListarCidades)
		v1.POST("/cidades", admin, enderecosH.CriarCidade)
		v1.GET("/bairros", todos, enderecosH.ListarBairros)
		v1.POST("/bairros", admin, enderecosH.CriarBairro)
		v1.GET("/cep/:cep", todos, enderecosH.ConsultarCEP)

		rel := v1.Group("/relatorios", gestao)
		{
			rel.GET("/vendas-por-dia", relatoriosH.VendasPorDia)
			rel.GET("/pagamentos-por-metodo", relatoriosH.PagamentosPorMetodo)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.AtualizarUsuario)
			usuarios.DELETE("/:id", authH.DesativarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
