package infra

// pdf.go — Receipt PDF generation using go-pdf/fpdf.
// Renders thermal receipt-style PDFs with the store header, item table,
// discount line, bold total and the payment breakdown.
// The output file is saved to storagePath/recibo_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"estoquepos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReciboPDF renders the receipt for a committed operation.
// storagePath is created if needed; returns the path to the generated file.
func GenerateReciboPDF(operacao *model.Operacao, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", operacao.ID)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "EstoquePOS", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	titulo := "Recibo de Venda"
	if operacao.Tipo == model.TipoCompra {
		titulo = "Recibo de Compra"
	}
	pdf.CellFormat(contentW, 5, titulo, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Operation info ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Operação %s", operacao.ID.String()[:8]), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, operacao.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if operacao.Cliente != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+operacao.Cliente.Nome, "", 1, "L", false, 0, "")
	}
	if operacao.Fornecedor != nil {
		pdf.CellFormat(contentW, 4, "Fornecedor: "+operacao.Fornecedor.RazaoSocial, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	// ── Item rows ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, item := range operacao.Itens {
		nome := item.NomeProduto
		if len(nome) > 22 {
			nome = nome[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !operacao.Desconto.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Desconto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-R$ "+operacao.Desconto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+operacao.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payment methods ──────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, pag := range operacao.Pagamentos {
		label := "Pagamento (" + pag.Metodo + "):"
		if pag.Parcelas != nil && *pag.Parcelas > 1 {
			label = fmt.Sprintf("Pagamento (%s %dx):", pag.Metodo, *pag.Parcelas)
		}
		pdf.CellFormat(col1+col2, 4, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "R$ "+pag.Valor.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Obrigado pela preferência!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
