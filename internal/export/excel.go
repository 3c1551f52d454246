package export

import (
	"fmt"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/xuri/excelize/v2"
)

// excelSheet is the single data sheet name, kept from the original
// spreadsheet exports consumed by the campaign team.
const excelSheet = "Dados"

// excelHeaders are the pt-BR display headers, in AllColumns order.
var excelHeaders = []string{
	"Telefone", "Nome", "Campanha", "Status", "Resposta", "Tipo de Resposta", "Data de Envio",
}

// statusLabels translates delivery statuses for display.
var statusLabels = map[domain.DeliveryStatus]string{
	domain.StatusDelivered: "Entregue",
	domain.StatusRead:      "Lido",
	domain.StatusReplied:   "Respondido",
	domain.StatusFailed:    "Falha",
	domain.StatusPending:   "Pendente",
	domain.StatusSent:      "Enviado",
}

// Excel serializes records into a single-sheet xlsx workbook with
// translated headers, translated statuses, and dd/mm/yyyy dates.
func Excel(records []domain.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(excelSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(excelSheet, "A1", &excelHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := []interface{}{
			rec.PhoneNumber,
			rec.ContactName,
			rec.CampaignLabel,
			translateStatus(rec.Status),
			rec.ReplyText,
			rec.ReplyType,
			rec.SentAt.Format("02/01/2006 15:04"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(excelSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func translateStatus(s domain.DeliveryStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
