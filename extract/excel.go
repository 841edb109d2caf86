package extract

import (
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/poiesic/medallion/core"
)

// decodeExcel reads the first sheet of an OOXML workbook. The first row is
// the header; shorter data rows are padded with null cells, excelize
// having already trimmed trailing empties.
func decodeExcel(desc core.SourceDescriptor) (*core.Table, error) {
	f, err := excelize.OpenFile(desc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return core.NewTable(), nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return sheetTable(rows)
}

// decodeXLS reads the first sheet of a legacy BIFF workbook, which
// excelize does not open.
func decodeXLS(desc core.SourceDescriptor) (*core.Table, error) {
	wb, err := xls.OpenFile(desc.Path)
	if err != nil {
		return nil, err
	}
	sh, err := wb.GetSheet(0)
	if err != nil {
		return core.NewTable(), nil
	}

	var rows [][]string
	for i := 0; i < sh.GetNumberRows(); i++ {
		row, err := sh.GetRow(i)
		if err != nil {
			return nil, err
		}
		var cells []string
		// Column count is not exposed, so probe until out of range.
		for j := 0; ; j++ {
			cell, err := row.GetCol(j)
			if err != nil {
				break
			}
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}
	return sheetTable(rows)
}

// sheetTable builds a table from spreadsheet rows, the first being the
// header. Data rows shorter than the header are padded with null cells;
// cells past the header width are dropped.
func sheetTable(rows [][]string) (*core.Table, error) {
	if len(rows) == 0 {
		return core.NewTable(), nil
	}

	header := rows[0]
	columns := make([][]any, len(header))
	for _, row := range rows[1:] {
		for i := range header {
			if i < len(row) {
				columns[i] = append(columns[i], row[i])
			} else {
				columns[i] = append(columns[i], nil)
			}
		}
	}

	table := core.NewTable()
	for i, name := range header {
		if err := table.AppendColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}
