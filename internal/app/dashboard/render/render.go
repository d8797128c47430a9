package render

import (
	"encoding/json"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"logindash/internal/app/dashboard"
)

const (
	// индексная колонка, как у DataFrame
	indexHeader  = ""
	maxCellRunes = 40
	emptyText    = "No records"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#93C5FD"})
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	indexStyle = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	nullStyle  = cellStyle.Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	emptyStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"})
)

// Table рисует набор как таблицу: колонки из ключей записей, строки в порядке ответа.
// width <= 0 - без ограничения ширины.
func Table(rs dashboard.RecordSet, width int) string {
	if len(rs.Columns) == 0 && rs.Empty() {
		return emptyStyle.Render(emptyText)
	}

	headers := append([]string{indexHeader}, rs.Columns...)
	rows := Rows(rs)
	for i := range rows {
		for j := range rows[i] {
			rows[i][j] = Truncate(rows[i][j], maxCellRunes)
		}
		rows[i] = append([]string{strconv.Itoa(i)}, rows[i]...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return indexStyle
			case row >= 0 && row < len(rs.Records) && isNull(rs.Records[row], rs.Columns[col-1]):
				return nullStyle
			default:
				return cellStyle
			}
		})
	if width > 0 {
		t = t.Width(width)
	}

	out := t.String()
	if rs.Empty() {
		out += "\n" + emptyStyle.Render(emptyText)
	}
	return out
}

// Rows возвращает значения ячеек по колонкам набора. Отсутствующее поле и null - пустая строка.
func Rows(rs dashboard.RecordSet) [][]string {
	rows := make([][]string, 0, len(rs.Records))
	for _, rec := range rs.Records {
		row := make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			row[i] = FormatValue(rec[col])
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatValue печатает JSON-значение без кавычек у строк и без экспоненты у целых чисел
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func Truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	return string(runes[:length-1]) + "…"
}

func isNull(rec dashboard.Record, col string) bool {
	v, ok := rec[col]
	return !ok || v == nil
}
