package pipeline

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

// exportColumns defines the ordered workbook output columns; keys index
// into Contract.Flat.
var exportColumns = []struct {
	Header string
	Key    string
}{
	{"File", "file"},
	{"Program Title", "program_title"},
	{"Start Date", "start_date"},
	{"End Date", "end_date"},
	{"Venue", "venue"},
	{"Cost Amount", "cost_amount"},
	{"Cost Currency", "cost_currency"},
	{"Trainer", "trainer"},
	{"Training Organiser", "training_organiser"},
	{"HRDC Certified", "hrdc_certified"},
	{"Category", "category"},
	{"Category Confidence", "confidence_category"},
	{"Title Confidence", "confidence_program_title"},
	{"Date Confidence", "confidence_date"},
	{"Venue Confidence", "confidence_venue"},
	{"Cost Confidence", "confidence_cost"},
	{"Trainer Confidence", "confidence_trainer"},
	{"Organiser Confidence", "confidence_organiser"},
	{"HRDC Confidence", "confidence_hrdc"},
	{"Method", "method"},
	{"Review Flags", "review_flags"},
	{"Status", "status"},
}

// ExportWorkbook writes contracts to an xlsx workbook split into a
// READY_TO_FILL sheet and a PENDING_REVIEW sheet.
func ExportWorkbook(contracts []*model.Contract, path string) error {
	f := xlsx.NewFile()

	ready, err := f.AddSheet(model.StatusReadyToFill)
	if err != nil {
		return eris.Wrap(err, "export: add ready sheet")
	}
	pending, err := f.AddSheet(model.StatusPendingReview)
	if err != nil {
		return eris.Wrap(err, "export: add pending sheet")
	}

	writeHeader(ready)
	writeHeader(pending)

	for _, c := range contracts {
		sheet := pending
		if c.Status == model.StatusReadyToFill {
			sheet = ready
		}
		writeContractRow(sheet, c)
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func writeHeader(sheet *xlsx.Sheet) {
	row := sheet.AddRow()
	for _, col := range exportColumns {
		row.AddCell().Value = col.Header
	}
}

func writeContractRow(sheet *xlsx.Sheet, c *model.Contract) {
	flat := c.Flat()
	row := sheet.AddRow()
	for _, col := range exportColumns {
		row.AddCell().Value = fmt.Sprintf("%v", model.CoercePrimitive(flat[col.Key]))
	}
}
