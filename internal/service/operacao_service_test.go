package service_test

import (
	"context"
	"testing"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type operacaoFixture struct {
	svc          service.OperacaoService
	caixaRepo    *stubCaixaRepo
	operacaoRepo *stubOperacaoRepo
	produtoRepo  *stubProdutoRepo
	clienteRepo  *stubClienteRepo
	caixa        *model.Caixa
}

func buildOperacaoSvc(estadoCaixa string, saldo float64) *operacaoFixture {
	caixaRepo := newStubCaixaRepo()
	operacaoRepo := newStubOperacaoRepo()
	produtoRepo := newStubProdutoRepo()
	clienteRepo := newStubClienteRepo()

	caixaSvc := service.NewCaixaService(caixaRepo, operacaoRepo)
	svc := service.NewOperacaoService(operacaoRepo, caixaSvc, caixaRepo, produtoRepo, clienteRepo, nil)

	caixa := seedCaixa(caixaRepo, 1, estadoCaixa, saldo)
	return &operacaoFixture{
		svc:          svc,
		caixaRepo:    caixaRepo,
		operacaoRepo: operacaoRepo,
		produtoRepo:  produtoRepo,
		clienteRepo:  clienteRepo,
		caixa:        caixa,
	}
}

func pagamento(metodo string, valor float64) dto.PagamentoRequest {
	return dto.PagamentoRequest{Metodo: metodo, Valor: d(valor)}
}

func TestRegistrar_CaixaFechado(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaFechado, 0)
	p := seedProduto(f.produtoRepo, "Arroz 5kg", "7891000100103", 10, 30)

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 30)},
	})
	assert.ErrorIs(t, err, service.ErrCaixaFechado)
}

func TestRegistrar_PagamentoInsuficiente(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Feijão 1kg", "7891000100110", 10, 12)

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 5}}, // total 60
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 50)},
	})
	assert.ErrorIs(t, err, service.ErrPagamentoInsuficiente)
	assert.Empty(t, f.operacaoRepo.operacoes)
}

func TestRegistrar_EstoqueInsuficiente(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Azeite 500ml", "7891000100127", 2, 40)

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 5}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 200)},
	})
	assert.ErrorIs(t, err, service.ErrEstoqueInsuficiente)
	assert.Equal(t, 2, p.EstoqueAtual)
}

func TestRegistrarVenda_CommitCompleto(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 500)
	p := seedProduto(f.produtoRepo, "Leite 1L", "7891000100134", 50, 6)

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 10}}, // total 60
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 100)},
	})
	require.NoError(t, err)

	assert.Equal(t, "registrada", resp.Estado)
	assert.Equal(t, "60", resp.Total.String())
	assert.Equal(t, "40", resp.Troco.String())
	assert.Equal(t, "560", resp.SaldoCaixa.String())

	// estoque baixado e movimento registrado
	assert.Equal(t, 40, p.EstoqueAtual)
	require.Len(t, f.produtoRepo.movimentos, 1)
	assert.Equal(t, "venda", f.produtoRepo.movimentos[0].Tipo)
	assert.Equal(t, -10, f.produtoRepo.movimentos[0].Quantidade)
	assert.Equal(t, 50, f.produtoRepo.movimentos[0].EstoqueAnterior)
	assert.Equal(t, 40, f.produtoRepo.movimentos[0].EstoqueNovo)
}

func TestRegistrarCompra_EntraEstoqueSaiSaldo(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 1000)
	p := seedProduto(f.produtoRepo, "Farinha 1kg", "7891000100141", 5, 8) // custo 4
	fornecedorID := uuid.New().String()

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:      f.caixa.ID.String(),
		Tipo:         model.TipoCompra,
		FornecedorID: &fornecedorID,
		Itens:        []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 20}}, // total 80 ao custo
		Pagamentos:   []dto.PagamentoRequest{pagamento(model.MetodoBoleto, 80)},
	})
	require.NoError(t, err)

	assert.Equal(t, "80", resp.Total.String())
	assert.Equal(t, "920", resp.SaldoCaixa.String())
	assert.Equal(t, 25, p.EstoqueAtual)
}

func TestRegistrarCompra_ComClienteRejeitada(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Óleo 900ml", "7891000100158", 5, 10)
	clienteID := uuid.New().String()

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoCompra,
		ClienteID:  &clienteID,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 10)},
	})
	assert.ErrorIs(t, err, service.ErrContraparteInvalida)
}

func TestRegistrarVenda_ResgateBonus(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Queijo 500g", "7891000100165", 10, 25)
	cliente := seedCliente(f.clienteRepo, "Maria Souza", 40)
	clienteID := cliente.ID.String()

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:   f.caixa.ID.String(),
		Tipo:      model.TipoVenda,
		ClienteID: &clienteID,
		Itens:     []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 2}}, // total 50
		Pagamentos: []dto.PagamentoRequest{
			pagamento(model.MetodoBonus, 30),
			pagamento(model.MetodoDinheiro, 20),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "10", cliente.SaldoBonus.String())
	require.Len(t, f.clienteRepo.movimentos, 1)
	assert.Equal(t, "debito", f.clienteRepo.movimentos[0].Tipo)
	assert.Equal(t, "30", f.clienteRepo.movimentos[0].Valor.String())
	assert.NotNil(t, f.clienteRepo.movimentos[0].ReferenciaID)
}

func TestRegistrarVenda_BonusInsuficiente(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Vinho 750ml", "7891000100172", 10, 60)
	cliente := seedCliente(f.clienteRepo, "João Lima", 20)
	clienteID := cliente.ID.String()

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:   f.caixa.ID.String(),
		Tipo:      model.TipoVenda,
		ClienteID: &clienteID,
		Itens:     []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{
			pagamento(model.MetodoBonus, 50),
			pagamento(model.MetodoPix, 10),
		},
	})
	assert.ErrorIs(t, err, service.ErrBonusInsuficiente)
	assert.Equal(t, "20", cliente.SaldoBonus.String())
}

func TestRegistrarVenda_BonusSemCliente(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Cerveja 350ml", "7891000100189", 10, 5)

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoBonus, 5)},
	})
	assert.ErrorIs(t, err, service.ErrPagamentoInvalido)
}

func TestEditar_SaldoMoveApenasPelaDiferenca(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 500)
	p := seedProduto(f.produtoRepo, "Refrigerante 2L", "7891000100196", 500, 10)
	usuarioID := uuid.New()

	resp, err := f.svc.Registrar(context.Background(), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 100}}, // total 1000
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 1000)},
	})
	require.NoError(t, err)
	assert.Equal(t, "1500", f.caixa.SaldoAtual.String())
	assert.Equal(t, 400, p.EstoqueAtual)

	operacaoID := uuid.MustParse(resp.ID)

	// 1000 → 1180: o saldo sobe só 180
	_, err = f.svc.Editar(context.Background(), operacaoID, usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 118}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 1180)},
	})
	require.NoError(t, err)
	assert.Equal(t, "1680", f.caixa.SaldoAtual.String())
	assert.Equal(t, 382, p.EstoqueAtual)

	// 1180 → 1100: o saldo desce 80
	_, err = f.svc.Editar(context.Background(), operacaoID, usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 110}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 1100)},
	})
	require.NoError(t, err)
	assert.Equal(t, "1600", f.caixa.SaldoAtual.String())
	assert.Equal(t, 390, p.EstoqueAtual)

	// uma única operação no livro
	assert.Len(t, f.operacaoRepo.operacoes, 1)
}

func TestEditar_TipoNaoPodeMudar(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Biscoito 200g", "7891000100202", 100, 4)
	usuarioID := uuid.New()

	resp, err := f.svc.Registrar(context.Background(), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 4)},
	})
	require.NoError(t, err)

	fornecedorID := uuid.New().String()
	_, err = f.svc.Editar(context.Background(), uuid.MustParse(resp.ID), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:      f.caixa.ID.String(),
		Tipo:         model.TipoCompra,
		FornecedorID: &fornecedorID,
		Itens:        []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos:   []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 2)},
	})
	assert.ErrorIs(t, err, service.ErrContraparteInvalida)
}

func TestEditar_BonusAntigoContaComoDisponivel(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Chocolate 90g", "7891000100219", 100, 100)
	cliente := seedCliente(f.clienteRepo, "Ana Costa", 100)
	clienteID := cliente.ID.String()
	usuarioID := uuid.New()

	// venda de 100 paga inteira com bônus: saldo vai a zero
	resp, err := f.svc.Registrar(context.Background(), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		ClienteID:  &clienteID,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoBonus, 100)},
	})
	require.NoError(t, err)
	assert.Equal(t, "0", cliente.SaldoBonus.String())

	// na edição, o bônus da operação antiga volta a contar como disponível
	_, err = f.svc.Editar(context.Background(), uuid.MustParse(resp.ID), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:   f.caixa.ID.String(),
		Tipo:      model.TipoVenda,
		ClienteID: &clienteID,
		Itens:     []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{
			pagamento(model.MetodoBonus, 80),
			pagamento(model.MetodoDinheiro, 20),
		},
	})
	require.NoError(t, err)

	// estorno de 100 seguido de débito de 80
	assert.Equal(t, "20", cliente.SaldoBonus.String())
}

func TestCancelar_ReverteTudo(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 200)
	p := seedProduto(f.produtoRepo, "Sabonete", "7891000100226", 30, 3)
	cliente := seedCliente(f.clienteRepo, "Pedro Dias", 10)
	clienteID := cliente.ID.String()
	usuarioID := uuid.New()

	resp, err := f.svc.Registrar(context.Background(), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:   f.caixa.ID.String(),
		Tipo:      model.TipoVenda,
		ClienteID: &clienteID,
		Itens:     []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 10}}, // total 30
		Pagamentos: []dto.PagamentoRequest{
			pagamento(model.MetodoBonus, 10),
			pagamento(model.MetodoDinheiro, 20),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, p.EstoqueAtual)
	assert.Equal(t, "230", f.caixa.SaldoAtual.String())
	assert.Equal(t, "0", cliente.SaldoBonus.String())

	err = f.svc.Cancelar(context.Background(), uuid.MustParse(resp.ID), "erro de lançamento")
	require.NoError(t, err)

	// estoque restaurado, saldo revertido, bônus estornado
	assert.Equal(t, 30, p.EstoqueAtual)
	assert.Equal(t, "200", f.caixa.SaldoAtual.String())
	assert.Equal(t, "10", cliente.SaldoBonus.String())

	operacao, err := f.operacaoRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "cancelada", operacao.Estado)

	var temRestauracao bool
	for _, m := range f.produtoRepo.movimentos {
		if m.Tipo == "restauracao_cancelamento" {
			temRestauracao = true
			assert.Equal(t, 10, m.Quantidade)
		}
	}
	assert.True(t, temRestauracao)
}

func TestCancelar_CaixaFechado(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 100)
	p := seedProduto(f.produtoRepo, "Amaciante 2L", "7891000100240", 20, 10)
	usuarioID := uuid.New()

	resp, err := f.svc.Registrar(context.Background(), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 10)},
	})
	require.NoError(t, err)
	assert.Equal(t, "110", f.caixa.SaldoAtual.String())

	// o caixa fechou antes do cancelamento: saldo congelado não reverte
	f.caixa.Estado = model.EstadoCaixaFechado

	err = f.svc.Cancelar(context.Background(), uuid.MustParse(resp.ID), "lançamento errado")
	assert.ErrorIs(t, err, service.ErrCaixaFechado)

	assert.Equal(t, "110", f.caixa.SaldoAtual.String())
	assert.Equal(t, 19, p.EstoqueAtual)

	operacao, err := f.operacaoRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "registrada", operacao.Estado)
}

func TestCancelar_JaCancelada(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	p := seedProduto(f.produtoRepo, "Detergente", "7891000100233", 10, 2)
	usuarioID := uuid.New()

	resp, err := f.svc.Registrar(context.Background(), usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 2)},
	})
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.Cancelar(context.Background(), id, "duplicada"))

	err = f.svc.Cancelar(context.Background(), id, "de novo")
	assert.ErrorIs(t, err, service.ErrOperacaoCancelada)

	// a edição também é bloqueada
	_, err = f.svc.Editar(context.Background(), id, usuarioID, dto.RegistrarOperacaoRequest{
		CaixaID:    f.caixa.ID.String(),
		Tipo:       model.TipoVenda,
		Itens:      []dto.ItemOperacaoRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		Pagamentos: []dto.PagamentoRequest{pagamento(model.MetodoDinheiro, 2)},
	})
	assert.ErrorIs(t, err, service.ErrOperacaoCancelada)
}

func TestListar_DefaultRegistradas(t *testing.T) {
	f := buildOperacaoSvc(model.EstadoCaixaAberto, 0)
	f.operacaoRepo.operacoes[uuid.New()] = &model.Operacao{
		ID: uuid.New(), CaixaID: f.caixa.ID, Tipo: model.TipoVenda,
		Total: d(10), Estado: model.EstadoOperacaoRegistrada,
	}
	f.operacaoRepo.operacoes[uuid.New()] = &model.Operacao{
		ID: uuid.New(), CaixaID: f.caixa.ID, Tipo: model.TipoVenda,
		Total: d(20), Estado: model.EstadoOperacaoCancelada,
	}

	resp, err := f.svc.Listar(context.Background(), dto.OperacaoFilter{CaixaID: f.caixa.ID.String()})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "registrada", resp.Data[0].Estado)

	todas, err := f.svc.Listar(context.Background(), dto.OperacaoFilter{CaixaID: f.caixa.ID.String(), Estado: "all"})
	require.NoError(t, err)
	assert.Len(t, todas.Data, 2)
}
