package dashboard

import (
	"strconv"
	"strings"
)

const (
	MinLimit               = 0
	MaxLimit               = 100
	DefaultLimit           = 5
	DefaultPage            = 1
	DefaultIsEncrypted     = true
	DefaultGroupDuplicates = false
)

// ViewState - параметры, которые пользователь меняет контролами и которые определяют следующий запрос
type ViewState struct {
	Limit           int  `json:"limit" yaml:"limit"`
	Page            int  `json:"page" yaml:"page"`
	IsEncrypted     bool `json:"isEncrypted" yaml:"isEncrypted"`
	GroupDuplicates bool `json:"groupDuplicates" yaml:"groupDuplicates"`
}

// NewViewState возвращает состояние по умолчанию: limit 5, page 1, isEncrypted true, groupDuplicates false
func NewViewState() *ViewState {
	return &ViewState{
		Limit:           DefaultLimit,
		Page:            DefaultPage,
		IsEncrypted:     DefaultIsEncrypted,
		GroupDuplicates: DefaultGroupDuplicates,
	}
}

// SetLimit ограничивает n диапазоном [0, 100] и возвращает сохраненное значение
func (v *ViewState) SetLimit(n int) int {
	switch {
	case n < MinLimit:
		n = MinLimit
	case n > MaxLimit:
		n = MaxLimit
	}
	v.Limit = n
	return n
}

// SetPage сохраняет номер страницы как есть, трактовка остается за сервером
func (v *ViewState) SetPage(n int) {
	v.Page = n
}

func (v *ViewState) ToggleEncrypted() {
	v.IsEncrypted = !v.IsEncrypted
}

func (v *ViewState) ToggleGroupDuplicates() {
	v.GroupDuplicates = !v.GroupDuplicates
}

// Query строит строку запроса строго в порядке limit, page, isEncrypted, groupDuplicates.
// Булевы значения в нижнем регистре (strconv.FormatBool): true/false.
func (v ViewState) Query() string {
	var b strings.Builder
	b.WriteString("limit=")
	b.WriteString(strconv.Itoa(v.Limit))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(v.Page))
	b.WriteString("&isEncrypted=")
	b.WriteString(strconv.FormatBool(v.IsEncrypted))
	b.WriteString("&groupDuplicates=")
	b.WriteString(strconv.FormatBool(v.GroupDuplicates))
	return b.String()
}

// Session владеет ViewState одного пользователя. Не потокобезопасна:
// все изменения идут из одного цикла обработки действий пользователя.
type Session struct {
	state *ViewState
}

func NewSession() *Session {
	return &Session{}
}

// Initialize устанавливает состояние по умолчанию, только если его еще нет
func (s *Session) Initialize() *ViewState {
	if s.state == nil {
		s.state = NewViewState()
	}
	return s.state
}

// State возвращает текущее состояние, инициализируя его при первом обращении
func (s *Session) State() *ViewState {
	return s.Initialize()
}
