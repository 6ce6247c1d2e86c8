package archive

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const colOverride = "Корректировка сложности"

// OverrideReader picks up manual complexity corrections engineers leave on
// their sheet of the bonus workbook. A correction takes precedence over the
// classifier wherever both exist for a design code.
type OverrideReader struct {
	path string
}

func NewOverrideReader(path string) *OverrideReader {
	return &OverrideReader{path: path}
}

// Overrides returns the design-code → override map for one engineer. A
// missing workbook, sheet or column means no overrides.
func (r *OverrideReader) Overrides(engineer string) (map[string]string, error) {
	file, err := excelize.OpenFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open bonus workbook: %w", err)
	}
	defer file.Close()

	index, err := file.GetSheetIndex(engineer)
	if err != nil || index < 0 {
		return nil, nil
	}

	rows, err := file.GetRows(engineer)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", engineer, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := headerIndex(rows[0])
	codeIdx, okCode := header[colDesignCode]
	overrideIdx, okOverride := header[colOverride]
	if !okCode || !okOverride {
		return nil, nil
	}

	overrides := make(map[string]string)
	for _, row := range rows[1:] {
		if codeIdx >= len(row) || overrideIdx >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[codeIdx])
		override := strings.TrimSpace(row[overrideIdx])
		if code != "" && override != "" {
			overrides[code] = override
		}
	}
	return overrides, nil
}
