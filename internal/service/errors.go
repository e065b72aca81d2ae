package service

import "errors"

// Domain errors. Handlers map these onto HTTP status codes with errors.Is.
var (
	ErrCaixaFechado   = errors.New("o caixa está fechado")
	ErrCaixaJaAberto  = errors.New("o caixa já está aberto")
	ErrCaixaJaFechado = errors.New("o caixa já está fechado")

	ErrValorInvalido  = errors.New("o valor deve ser maior que zero")
	ErrIndiceInvalido = errors.New("índice fora do intervalo")

	ErrSemItens              = errors.New("a operação não possui itens")
	ErrContraparteInvalida   = errors.New("contraparte incompatível com o tipo da operação")
	ErrPagamentoInvalido     = errors.New("pagamento inválido")
	ErrMetodoAusente         = errors.New("método de pagamento não informado")
	ErrParcelasInvalidas     = errors.New("parcelamento permitido apenas no cartão de crédito, de 1 a 12 vezes")
	ErrPagamentoInsuficiente = errors.New("os pagamentos não cobrem o total da operação")
	ErrBonusInsuficiente     = errors.New("saldo de bônus insuficiente")

	ErrEstoqueInsuficiente  = errors.New("estoque insuficiente")
	ErrDuplicado            = errors.New("registro duplicado")
	ErrNaoEncontrado        = errors.New("registro não encontrado")
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	ErrUsuarioInativo       = errors.New("usuário inativo")
	ErrOperacaoCancelada    = errors.New("a operação já foi cancelada")
)
