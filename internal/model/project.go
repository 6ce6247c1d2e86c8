package model

import "time"

// DateLayout is the date format used across the project archive.
const DateLayout = "02.01.2006"

// Project is one row of the project archive. Values arrive as free text from
// the spreadsheet, so numeric fields stay raw strings until scoring parses
// them with per-field defaults.
type Project struct {
	Country         string
	ObjectName      string
	DesignCode      string
	ObjectType      string
	DirectionsRaw   string // "Количество направлений"
	OtherAPTRaw     string // "Другие АПТ (количество направлений)"
	ProtectedArea   string // "Площадь защищаемых помещений (м^2)"
	FireAlarm       string // "ПС": "Есть"/"Нет"
	SecurityAlarm   string // "ОС"
	Evacuation      string // "СОУЭ"
	VentAutomation  string // "Автоматизация систем вентиляции"
	EquipmentType   string // "Тип оборудования пожаротушения (Заря/Император)"
	ModuleCountRaw  string // "Количество модулей", may hold a sum expression
	CameraCountRaw  string // "СОТ (количество камер)"
	AccessPointsRaw string // "СКУД (количество точек доступа)"
	Heritage        string // "Объект культурного наследия": "Да"/"Нет"
	Network         string // "Сети": "Есть"/"Нет"
	Authors         string // "Разработал", comma-separated
	StartDateRaw    string
	EndDateRaw      string // empty while the project is in progress
	Correction      string // "Корректировка проекта": "Да"/"Нет"
	ExtensionRaw    string // "Продление дедлайна (рабочие дни)"
	EquipmentSumRaw string // "Сумма заложенного оборудования"
}

// StartDate parses the project start date.
func (p Project) StartDate() (time.Time, error) {
	return time.Parse(DateLayout, p.StartDateRaw)
}

// EndDate parses the project end date.
func (p Project) EndDate() (time.Time, error) {
	return time.Parse(DateLayout, p.EndDateRaw)
}

// InProgress reports whether the project has no completion date yet.
func (p Project) InProgress() bool {
	return p.EndDateRaw == ""
}

// ScoredProject is a project row with everything the scoring pass attaches to
// it: the automatically classified tier, the manual override (if any), the
// computed deadline and the score itself. Deadlines are filled in as scoring
// proceeds, so later rows can see the deadlines of earlier siblings.
type ScoredProject struct {
	Project
	AutoTier    int
	OverrideRaw string
	Deadline    *time.Time
	Score       Score
}
