package service

import (
	"context"
	"fmt"
	"time"

	"estoquepos/internal/dto"
	"estoquepos/internal/model"
	"estoquepos/internal/repository"
	"estoquepos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OperacaoService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarOperacaoRequest) (*dto.OperacaoResponse, error)
	Editar(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID, req dto.RegistrarOperacaoRequest) (*dto.OperacaoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) error
	Obter(ctx context.Context, id uuid.UUID) (*dto.OperacaoResponse, error)
	Listar(ctx context.Context, filter dto.OperacaoFilter) (*dto.OperacaoListResponse, error)
}

type operacaoService struct {
	repo        repository.OperacaoRepository
	caixa       CaixaService
	caixaRepo   repository.CaixaRepository
	produtoRepo repository.ProdutoRepository
	clienteRepo repository.ClienteRepository
	dispatcher  *worker.Dispatcher
}

func NewOperacaoService(
	repo repository.OperacaoRepository,
	caixa CaixaService,
	caixaRepo repository.CaixaRepository,
	produtoRepo repository.ProdutoRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
) OperacaoService {
	return &operacaoService{
		repo:        repo,
		caixa:       caixa,
		caixaRepo:   caixaRepo,
		produtoRepo: produtoRepo,
		clienteRepo: clienteRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Commit pipeline:
//   1. Validate the caixa is open and take its lock
//   2. Resolve products, assemble the draft, validate payment coverage
//   3. Bonus payments: check the cliente has enough saldo
//   4. BEGIN TX: create operacao+itens+pagamentos, move stock, debit bonus,
//      apply the signed saldo delta to the caixa
//   5. COMMIT
//   6. (async) dispatch receipt job

func (s *operacaoService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarOperacaoRequest) (*dto.OperacaoResponse, error) {
	caixaID, err := uuid.Parse(req.CaixaID)
	if err != nil {
		return nil, fmt.Errorf("caixa_id inválido: %w", err)
	}

	mu := s.caixa.Lock(caixaID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.caixa.ValidarAberto(ctx, caixaID); err != nil {
		return nil, err
	}

	rascunho, err := s.montarRascunho(ctx, req)
	if err != nil {
		return nil, err
	}

	cliente, err := s.validarBonus(ctx, rascunho)
	if err != nil {
		return nil, err
	}

	total := rascunho.Total()
	pago := TotalPago(rascunho.Pagamentos)
	delta := DeltaSaldo(rascunho.Tipo, total)

	var operacao model.Operacao
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		operacao = model.Operacao{
			CaixaID:      caixaID,
			Tipo:         rascunho.Tipo,
			ClienteID:    rascunho.ClienteID,
			FornecedorID: rascunho.FornecedorID,
			Subtotal:     rascunho.Subtotal(),
			Desconto:     rascunho.Desconto,
			Total:        total,
			Estado:       model.EstadoOperacaoRegistrada,
			UsuarioID:    usuarioID,
			Itens:        rascunho.Itens,
			Pagamentos:   rascunho.Pagamentos,
		}
		if err := s.repo.Create(ctx, tx, &operacao); err != nil {
			return err
		}

		if err := s.moverEstoque(ctx, tx, &operacao, rascunho.Tipo, false); err != nil {
			return err
		}

		if cliente != nil {
			valorBonus := rascunho.TotalMetodo(model.MetodoBonus)
			if err := s.debitarBonus(ctx, tx, cliente.ID, valorBonus, &operacao); err != nil {
				return err
			}
		}

		return s.caixaRepo.AtualizarSaldoTx(ctx, tx, caixaID, delta)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async receipt job (best-effort)
	if s.dispatcher != nil {
		payload := map[string]interface{}{"operacao_id": operacao.ID.String()}
		if req.ClienteEmail != nil && *req.ClienteEmail != "" {
			payload["cliente_email"] = *req.ClienteEmail
		}
		_ = s.dispatcher.EnqueueRecibo(ctx, payload)
	}

	resp := operacaoToResponse(&operacao)
	resp.TotalPago = pago
	resp.Troco = Troco(total, pago)
	if caixa, err := s.caixaRepo.FindByID(ctx, caixaID); err == nil {
		resp.SaldoCaixa = caixa.SaldoAtual
	}
	return resp, nil
}

// ── Editar ────────────────────────────────────────────────────────────────────
// Edit-and-recommit replaces the operation in place. The caixa saldo moves by
// the difference between the new and old signed deltas, not by the full new
// total, so editing is neutral when the total does not change.

func (s *operacaoService) Editar(ctx context.Context, id uuid.UUID, usuarioID uuid.UUID, req dto.RegistrarOperacaoRequest) (*dto.OperacaoResponse, error) {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	if existente.Estado == model.EstadoOperacaoCancelada {
		return nil, ErrOperacaoCancelada
	}

	mu := s.caixa.Lock(existente.CaixaID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.caixa.ValidarAberto(ctx, existente.CaixaID); err != nil {
		return nil, err
	}

	rascunho, err := s.montarRascunho(ctx, req)
	if err != nil {
		return nil, err
	}
	if rascunho.Tipo != existente.Tipo {
		return nil, ErrContraparteInvalida
	}

	cliente, err := s.validarBonusEdicao(ctx, rascunho, existente)
	if err != nil {
		return nil, err
	}

	total := rascunho.Total()
	pago := TotalPago(rascunho.Pagamentos)
	deltaAntigo := DeltaSaldo(existente.Tipo, existente.Total)
	deltaNovo := DeltaSaldo(rascunho.Tipo, total)
	ajuste := deltaNovo.Sub(deltaAntigo)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Put the old stock back before applying the new lines.
		if err := s.reporEstoque(ctx, tx, existente, "edicao"); err != nil {
			return err
		}

		// Refund any bonus taken by the old payments.
		if err := s.estornarBonus(ctx, tx, existente, "Edição"); err != nil {
			return err
		}

		existente.ClienteID = rascunho.ClienteID
		existente.FornecedorID = rascunho.FornecedorID
		existente.Subtotal = rascunho.Subtotal()
		existente.Desconto = rascunho.Desconto
		existente.Total = total
		existente.UsuarioID = usuarioID
		existente.Itens = nil
		existente.Pagamentos = nil
		for _, it := range rascunho.Itens {
			it.OperacaoID = existente.ID
			existente.Itens = append(existente.Itens, it)
		}
		for _, p := range rascunho.Pagamentos {
			p.OperacaoID = existente.ID
			existente.Pagamentos = append(existente.Pagamentos, p)
		}
		if err := s.repo.ReplaceTx(ctx, tx, existente); err != nil {
			return err
		}

		if err := s.moverEstoque(ctx, tx, existente, rascunho.Tipo, true); err != nil {
			return err
		}

		if cliente != nil {
			valorBonus := rascunho.TotalMetodo(model.MetodoBonus)
			if err := s.debitarBonus(ctx, tx, cliente.ID, valorBonus, existente); err != nil {
				return err
			}
		}

		if !ajuste.IsZero() {
			return s.caixaRepo.AtualizarSaldoTx(ctx, tx, existente.CaixaID, ajuste)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := operacaoToResponse(existente)
	resp.TotalPago = pago
	resp.Troco = Troco(total, pago)
	if caixa, err := s.caixaRepo.FindByID(ctx, existente.CaixaID); err == nil {
		resp.SaldoCaixa = caixa.SaldoAtual
	}
	return resp, nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────

func (s *operacaoService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) error {
	operacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNaoEncontrado
	}
	if operacao.Estado == model.EstadoOperacaoCancelada {
		return ErrOperacaoCancelada
	}

	mu := s.caixa.Lock(operacao.CaixaID)
	mu.Lock()
	defer mu.Unlock()

	// O saldo de um caixa fechado está congelado; reverter exige caixa aberto.
	if err := s.caixa.ValidarAberto(ctx, operacao.CaixaID); err != nil {
		return err
	}

	delta := DeltaSaldo(operacao.Tipo, operacao.Total).Neg()

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.reporEstoque(ctx, tx, operacao, "restauracao_cancelamento"); err != nil {
			return err
		}
		if err := s.estornarBonus(ctx, tx, operacao, motivo); err != nil {
			return err
		}
		if err := s.caixaRepo.AtualizarSaldoTx(ctx, tx, operacao.CaixaID, delta); err != nil {
			return err
		}
		return s.repo.UpdateEstadoTx(ctx, tx, id, model.EstadoOperacaoCancelada)
	})
}

// ── Obter / Listar ────────────────────────────────────────────────────────────

func (s *operacaoService) Obter(ctx context.Context, id uuid.UUID) (*dto.OperacaoResponse, error) {
	operacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	resp := operacaoToResponse(operacao)
	pago := TotalPago(operacao.Pagamentos)
	resp.TotalPago = pago
	resp.Troco = Troco(operacao.Total, pago)
	return resp, nil
}

func (s *operacaoService) Listar(ctx context.Context, filter dto.OperacaoFilter) (*dto.OperacaoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = model.EstadoOperacaoRegistrada
	}
	operacoes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OperacaoListItem, 0, len(operacoes))
	for i := range operacoes {
		items = append(items, *operacaoToListItem(&operacoes[i]))
	}
	return &dto.OperacaoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Pipeline helpers ──────────────────────────────────────────────────────────

// montarRascunho resolves products and assembles a validated draft from the
// request. All pre-flight checks run here, outside the transaction.
func (s *operacaoService) montarRascunho(ctx context.Context, req dto.RegistrarOperacaoRequest) (*RascunhoOperacao, error) {
	rascunho := NovoRascunho(req.Tipo)
	rascunho.Desconto = req.Desconto
	if rascunho.Desconto.IsNegative() {
		return nil, ErrValorInvalido
	}

	var clienteID, fornecedorID *uuid.UUID
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		clienteID = &id
	}
	if req.FornecedorID != nil {
		id, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, fmt.Errorf("fornecedor_id inválido: %w", err)
		}
		fornecedorID = &id
	}
	if err := rascunho.SetContraparte(clienteID, fornecedorID); err != nil {
		return nil, err
	}

	for _, item := range req.Itens {
		pid, err := uuid.Parse(item.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("produto_id inválido: %w", err)
		}
		p, err := s.produtoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("produto %s não encontrado", item.ProdutoID)
		}
		if !p.Ativo {
			return nil, fmt.Errorf("produto %s está inativo", p.Nome)
		}
		if req.Tipo == model.TipoVenda && p.EstoqueAtual < item.Quantidade {
			return nil, fmt.Errorf("%w: %s", ErrEstoqueInsuficiente, p.Nome)
		}
		if err := rascunho.AddItem(p, item.Quantidade); err != nil {
			return nil, err
		}
	}

	for _, pag := range req.Pagamentos {
		if err := rascunho.AddPagamento(pag.Metodo, pag.Valor, pag.Parcelas); err != nil {
			return nil, err
		}
	}

	if err := rascunho.Validar(); err != nil {
		return nil, err
	}
	return rascunho, nil
}

// validarBonus checks bonus payments against the customer balance and returns
// the cliente when a bonus debit must happen at commit.
func (s *operacaoService) validarBonus(ctx context.Context, rascunho *RascunhoOperacao) (*model.Cliente, error) {
	valorBonus := rascunho.TotalMetodo(model.MetodoBonus)
	if valorBonus.IsZero() {
		return nil, nil
	}
	if rascunho.Tipo != model.TipoVenda || rascunho.ClienteID == nil {
		return nil, ErrPagamentoInvalido
	}
	cliente, err := s.clienteRepo.FindByID(ctx, *rascunho.ClienteID)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	if cliente.SaldoBonus.LessThan(valorBonus) {
		return nil, ErrBonusInsuficiente
	}
	return cliente, nil
}

// validarBonusEdicao is the edit-time variant: the bonus already taken by the
// old payments counts as available again when checking the new draft.
func (s *operacaoService) validarBonusEdicao(ctx context.Context, rascunho *RascunhoOperacao, antiga *model.Operacao) (*model.Cliente, error) {
	valorBonus := rascunho.TotalMetodo(model.MetodoBonus)
	if valorBonus.IsZero() {
		return nil, nil
	}
	if rascunho.Tipo != model.TipoVenda || rascunho.ClienteID == nil {
		return nil, ErrPagamentoInvalido
	}
	cliente, err := s.clienteRepo.FindByID(ctx, *rascunho.ClienteID)
	if err != nil {
		return nil, ErrNaoEncontrado
	}
	disponivel := cliente.SaldoBonus
	if antiga.ClienteID != nil && *antiga.ClienteID == cliente.ID {
		disponivel = disponivel.Add(bonusDaOperacao(antiga))
	}
	if disponivel.LessThan(valorBonus) {
		return nil, ErrBonusInsuficiente
	}
	return cliente, nil
}

// moverEstoque applies the stock effect of every line: sales subtract,
// purchases add. tipoEdicao switches the movement label for the edit flow.
func (s *operacaoService) moverEstoque(ctx context.Context, tx *gorm.DB, o *model.Operacao, tipo string, edicao bool) error {
	for _, item := range o.Itens {
		delta := item.Quantidade
		if tipo == model.TipoVenda {
			delta = -item.Quantidade
		}

		anterior := 0
		if prod, err := s.produtoRepo.FindByIDTx(ctx, tx, item.ProdutoID); err == nil {
			anterior = prod.EstoqueAtual
		}

		if err := s.produtoRepo.UpdateEstoqueTx(ctx, tx, item.ProdutoID, delta); err != nil {
			return fmt.Errorf("erro ao mover estoque de %s: %w", item.NomeProduto, err)
		}

		tipoMov := tipo
		if edicao {
			tipoMov = "edicao"
		}
		ref := o.ID
		mov := &model.MovimentoEstoque{
			ProdutoID:       item.ProdutoID,
			Tipo:            tipoMov,
			Quantidade:      delta,
			EstoqueAnterior: anterior,
			EstoqueNovo:     anterior + delta,
			Motivo:          fmt.Sprintf("Operação %s", o.ID),
			ReferenciaID:    &ref,
		}
		if err := s.produtoRepo.CreateMovimentoEstoqueTx(ctx, tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// reporEstoque reverses the stock effect of a committed operation.
func (s *operacaoService) reporEstoque(ctx context.Context, tx *gorm.DB, o *model.Operacao, tipoMov string) error {
	for _, item := range o.Itens {
		delta := item.Quantidade
		if o.Tipo == model.TipoCompra {
			delta = -item.Quantidade
		}

		anterior := 0
		if prod, err := s.produtoRepo.FindByIDTx(ctx, tx, item.ProdutoID); err == nil {
			anterior = prod.EstoqueAtual
		}

		if err := s.produtoRepo.UpdateEstoqueTx(ctx, tx, item.ProdutoID, delta); err != nil {
			return err
		}

		ref := o.ID
		mov := &model.MovimentoEstoque{
			ProdutoID:       item.ProdutoID,
			Tipo:            tipoMov,
			Quantidade:      delta,
			EstoqueAnterior: anterior,
			EstoqueNovo:     anterior + delta,
			Motivo:          fmt.Sprintf("Reversão operação %s", o.ID),
			ReferenciaID:    &ref,
		}
		if err := s.produtoRepo.CreateMovimentoEstoqueTx(ctx, tx, mov); err != nil {
			return err
		}
	}
	return nil
}

func (s *operacaoService) debitarBonus(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID, valor decimal.Decimal, o *model.Operacao) error {
	if err := s.clienteRepo.AtualizarSaldoBonusTx(ctx, tx, clienteID, valor.Neg()); err != nil {
		return err
	}
	ref := o.ID
	mov := &model.MovimentoBonus{
		ClienteID:    clienteID,
		Tipo:         "debito",
		Valor:        valor,
		Descricao:    "Resgate em venda",
		ReferenciaID: &ref,
	}
	return s.clienteRepo.CreateMovimentoBonusTx(ctx, tx, mov)
}

// estornarBonus refunds the bonus taken by an operation's payments.
func (s *operacaoService) estornarBonus(ctx context.Context, tx *gorm.DB, o *model.Operacao, motivo string) error {
	valor := bonusDaOperacao(o)
	if valor.IsZero() || o.ClienteID == nil {
		return nil
	}
	if err := s.clienteRepo.AtualizarSaldoBonusTx(ctx, tx, *o.ClienteID, valor); err != nil {
		return err
	}
	ref := o.ID
	mov := &model.MovimentoBonus{
		ClienteID:    *o.ClienteID,
		Tipo:         "credito",
		Valor:        valor,
		Descricao:    fmt.Sprintf("Estorno de bônus: %s", motivo),
		ReferenciaID: &ref,
	}
	return s.clienteRepo.CreateMovimentoBonusTx(ctx, tx, mov)
}

func bonusDaOperacao(o *model.Operacao) decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Pagamentos {
		if p.Metodo == model.MetodoBonus {
			total = total.Add(p.Valor)
		}
	}
	return total
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func nomeContraparte(o *model.Operacao) *string {
	if o.Cliente != nil {
		return &o.Cliente.Nome
	}
	if o.Fornecedor != nil {
		return &o.Fornecedor.RazaoSocial
	}
	return nil
}

func itensToResponse(itens []model.OperacaoItem) []dto.ItemOperacaoResponse {
	out := make([]dto.ItemOperacaoResponse, 0, len(itens))
	for _, it := range itens {
		out = append(out, dto.ItemOperacaoResponse{
			ProdutoID:     it.ProdutoID.String(),
			Codigo:        it.CodigoProduto,
			Nome:          it.NomeProduto,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			Subtotal:      it.Subtotal,
		})
	}
	return out
}

func pagamentosToResponse(pagamentos []model.OperacaoPagamento) []dto.PagamentoResponse {
	out := make([]dto.PagamentoResponse, 0, len(pagamentos))
	for _, p := range pagamentos {
		out = append(out, dto.PagamentoResponse{Metodo: p.Metodo, Valor: p.Valor, Parcelas: p.Parcelas})
	}
	return out
}

func operacaoToResponse(o *model.Operacao) *dto.OperacaoResponse {
	return &dto.OperacaoResponse{
		ID:          o.ID.String(),
		CaixaID:     o.CaixaID.String(),
		Tipo:        o.Tipo,
		Contraparte: nomeContraparte(o),
		Itens:       itensToResponse(o.Itens),
		Pagamentos:  pagamentosToResponse(o.Pagamentos),
		Subtotal:    o.Subtotal,
		Desconto:    o.Desconto,
		Total:       o.Total,
		Estado:      o.Estado,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func operacaoToListItem(o *model.Operacao) *dto.OperacaoListItem {
	return &dto.OperacaoListItem{
		ID:          o.ID.String(),
		CaixaID:     o.CaixaID.String(),
		Tipo:        o.Tipo,
		Contraparte: nomeContraparte(o),
		Subtotal:    o.Subtotal,
		Desconto:    o.Desconto,
		Total:       o.Total,
		Estado:      o.Estado,
		Itens:       itensToResponse(o.Itens),
		Pagamentos:  pagamentosToResponse(o.Pagamentos),
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
