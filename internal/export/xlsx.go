package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/edu-choropleth/internal/scale"
)

// Sheet names in the XLSX export.
const (
	CountiesSheet = "Counties"
	BinsSheet     = "Bins"
)

var countyHeader = []string{"FIPS", "Area", "State", "Bachelors or higher", "Bin", "Color"}
var binHeader = []string{"Bin", "From", "To", "Color", "Counties"}

// WriteXLSX writes a workbook with one row per county and a sheet describing
// each color bin and how many counties fell into it.
func WriteXLSX(path string, counties []County, domain *scale.Domain, th *scale.Threshold) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet(CountiesSheet)
	if err != nil {
		return eris.Wrap(err, "export: add counties sheet")
	}
	addHeader(sheet, countyHeader)

	counts := make([]int, len(th.Colors))
	for _, c := range counties {
		row := sheet.AddRow()
		row.AddCell().SetInt(c.FIPS)
		if !c.Matched {
			row.AddCell().SetString("")
			row.AddCell().SetString("")
			row.AddCell().SetString("")
			row.AddCell().SetString("")
			row.AddCell().SetString(c.Color)
			continue
		}
		counts[c.Bin]++
		row.AddCell().SetString(c.Name)
		row.AddCell().SetString(c.State)
		row.AddCell().SetFloat(c.Education)
		row.AddCell().SetInt(c.Bin)
		row.AddCell().SetString(c.Color)
	}

	bins, err := f.AddSheet(BinsSheet)
	if err != nil {
		return eris.Wrap(err, "export: add bins sheet")
	}
	addHeader(bins, binHeader)
	for i, color := range th.Colors {
		lo, hi := domain.BinRange(i)
		row := bins.AddRow()
		row.AddCell().SetInt(i)
		row.AddCell().SetFloat(lo)
		row.AddCell().SetFloat(hi)
		row.AddCell().SetString(color)
		row.AddCell().SetInt(counts[i])
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, cols []string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}
