package course

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportXLSX reads a catalog from the first sheet of a workbook. The first
// row is a header naming the columns key, label, module and concept in any
// order; key and module are required. The course id is the file name.
func ImportXLSX(path string) (*Course, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open course workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("course workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("course workbook is empty")
	}

	col := make(map[string]int)
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"key", "module"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("course workbook missing %q column", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	c := &Course{
		ID:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Title: sheets[0],
	}
	modules := make(map[string]int)
	for n, row := range rows[1:] {
		key := cell(row, "key")
		if key == "" {
			continue
		}
		mod := cell(row, "module")
		if mod == "" {
			return nil, fmt.Errorf("row %d: item %q has no module", n+2, key)
		}
		mi, ok := modules[mod]
		if !ok {
			mi = len(c.Modules)
			modules[mod] = mi
			c.Modules = append(c.Modules, Module{ID: mod, Title: mod})
		}
		c.Modules[mi].Items = append(c.Modules[mi].Items, Item{
			Key:     key,
			Label:   cell(row, "label"),
			Concept: cell(row, "concept"),
		})
	}
	if err := c.finish(); err != nil {
		return nil, fmt.Errorf("course workbook: %w", err)
	}
	return c, nil
}
