package archive

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okris/salary-bonus/internal/model"
)

// Archive column headers. Header matching collapses repeated whitespace, the
// source table is hand-maintained and drifts.
const (
	colCountry       = "Страна"
	colObjectName    = "Наименование объекта"
	colDesignCode    = "Шифр (ИСП)"
	colObjectType    = "Тип объекта"
	colDirections    = "Количество направлений"
	colOtherAPT      = "Другие АПТ (количество направлений)"
	colProtectedArea = "Площадь защищаемых помещений (м^2)"
	colFireAlarm     = "ПС"
	colSecurityAlarm = "ОС"
	colEvacuation    = "СОУЭ"
	colVentilation   = "Автоматизация систем вентиляции"
	colEquipmentType = "Тип оборудования пожаротушения (Заря/Император)"
	colModuleCount   = "Количество модулей"
	colCameras       = "СОТ (количество камер)"
	colAccessPoints  = "СКУД (количество точек доступа)"
	colHeritage      = "Объект культурного наследия"
	colNetwork       = "Сети"
	colAuthors       = "Разработал"
	colStartDate     = "Дата начала проекта"
	colEndDate       = "Дата окончания проекта"
	colCorrection    = "Корректировка проекта"
	colExtension     = "Продление дедлайна (рабочие дни)"
	colEquipmentSum  = "Сумма заложенного оборудования"
)

// Reader loads project records from the archive workbook. One sheet per
// reporting year, first row is the header.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Projects returns the archive rows for a year in sheet order. A missing
// workbook or a missing year sheet yields an empty collection, not an error.
func (r *Reader) Projects(year int) ([]model.Project, error) {
	file, err := excelize.OpenFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	sheet := strconv.Itoa(year)
	index, err := file.GetSheetIndex(sheet)
	if err != nil || index < 0 {
		return nil, nil
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read archive sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := headerIndex(rows[0])
	projects := make([]model.Project, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		projects = append(projects, projectFromRow(row, header))
	}
	return projects, nil
}

func projectFromRow(row []string, header map[string]int) model.Project {
	cell := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	return model.Project{
		Country:         cell(colCountry),
		ObjectName:      cell(colObjectName),
		DesignCode:      cell(colDesignCode),
		ObjectType:      cell(colObjectType),
		DirectionsRaw:   cell(colDirections),
		OtherAPTRaw:     cell(colOtherAPT),
		ProtectedArea:   cell(colProtectedArea),
		FireAlarm:       cell(colFireAlarm),
		SecurityAlarm:   cell(colSecurityAlarm),
		Evacuation:      cell(colEvacuation),
		VentAutomation:  cell(colVentilation),
		EquipmentType:   cell(colEquipmentType),
		ModuleCountRaw:  cell(colModuleCount),
		CameraCountRaw:  cell(colCameras),
		AccessPointsRaw: cell(colAccessPoints),
		Heritage:        cell(colHeritage),
		Network:         cell(colNetwork),
		Authors:         cell(colAuthors),
		StartDateRaw:    cell(colStartDate),
		EndDateRaw:      cell(colEndDate),
		Correction:      cell(colCorrection),
		ExtensionRaw:    cell(colExtension),
		EquipmentSumRaw: cell(colEquipmentSum),
	}
}

func headerIndex(row []string) map[string]int {
	header := make(map[string]int, len(row))
	for i, name := range row {
		normalized := strings.Join(strings.Fields(name), " ")
		if normalized != "" {
			header[normalized] = i
		}
	}
	return header
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
