package classify

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/trainingdesk/brochure-cli/internal/model"
)

// Sheet order carries the domain: the first sheet holds Technical
// categories, the second Functional.
var domainBySheet = map[int]string{0: "Technical", 1: "Functional"}

// LoadTaxonomy reads the category taxonomy workbook. Header names are
// matched loosely (common typos included); a headerless sheet falls back
// to the positional No|Category|Definition|Remarks|Keywords layout.
// Duplicate (domain, name) pairs keep the first occurrence.
func LoadTaxonomy(path string) ([]model.Category, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "classify: open taxonomy")
	}

	var cats []model.Category

	for si, sheet := range f.Sheets {
		domain := domainBySheet[si]
		if domain == "" {
			domain = "Unknown"
		}
		if len(sheet.Rows) < 2 {
			continue
		}

		header := make([]string, len(sheet.Rows[0].Cells))
		for i, c := range sheet.Rows[0].Cells {
			header[i] = strings.ToLower(cleanText(c.String()))
		}

		idxName := colIdx(header, "category", "categories")
		idxDef := colIdx(header, "definition", "description", "defination")
		idxRem := colIdx(header, "remarks", "remark", "note", "notes")
		idxKw := colIdx(header, "reference keyword", "reference keywords", "keywords", "keyword")

		// Positional fallback: No | Category | Definition | Remarks | Keywords.
		if idxName < 0 {
			idxName = 0
			if len(header) > 1 {
				idxName = 1
			}
		}
		if idxDef < 0 {
			idxDef = idxName
			if len(header) > 2 {
				idxDef = 2
			}
		}
		if idxRem < 0 {
			idxRem = idxDef
			if len(header) > 3 {
				idxRem = 3
			}
		}
		if idxKw < 0 && len(header) >= 5 {
			idxKw = 4
		}

		for _, row := range sheet.Rows[1:] {
			name := cellText(row, idxName)
			if name == "" {
				continue
			}

			cats = append(cats, model.Category{
				Domain:     domain,
				Name:       name,
				Definition: cellText(row, idxDef),
				Remarks:    cellText(row, idxRem),
				Keywords:   cellText(row, idxKw),
			})
		}
	}

	seen := make(map[string]bool, len(cats))
	unique := cats[:0]
	for _, c := range cats {
		if !seen[c.Key()] {
			seen[c.Key()] = true
			unique = append(unique, c)
		}
	}

	return unique, nil
}

func colIdx(header []string, candidates ...string) int {
	for _, cand := range candidates {
		for i, h := range header {
			if strings.Contains(h, cand) {
				return i
			}
		}
	}
	return -1
}

func cellText(row *xlsx.Row, idx int) string {
	if idx < 0 || idx >= len(row.Cells) {
		return ""
	}
	return cleanText(row.Cells[idx].String())
}
