package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"logindash/internal/app/dashboard"
)

const (
	limitStep     = 1
	limitPageStep = 10
	maxPageDigits = 9
)

// Loader выполняет один запрос и всегда возвращает результат, ошибка уже внутри
type Loader interface {
	Load(ctx context.Context, state dashboard.ViewState) dashboard.Result
	Endpoint() string
}

type control int

const (
	controlLimit control = iota
	controlPage
	controlEncrypted
	controlGroup
	controlFetch
	controlCount
)

type fetchResultMsg struct {
	result dashboard.Result
}

// Model - экран дашборда: контролы, кнопка загрузки и таблица последнего результата
type Model struct {
	ctx     context.Context
	session *dashboard.Session
	loader  Loader

	focus       control
	pageBuf     string
	editingPage bool

	loading bool
	records dashboard.RecordSet
	last    *dashboard.Result

	width    int
	height   int
	quitting bool
}

// NewModel создает модель и инициализирует состояние сессии значениями по умолчанию
func NewModel(ctx context.Context, session *dashboard.Session, loader Loader) *Model {
	session.Initialize()
	return &Model{
		ctx:     ctx,
		session: session,
		loader:  loader,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case fetchResultMsg:
		return m.handleFetchResult(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.moveFocus(1)
		return m, nil
	case "shift+tab":
		m.moveFocus(-1)
		return m, nil
	case "f":
		return m, m.fetch()
	}

	switch m.focus {
	case controlLimit:
		m.handleLimitKey(key)
	case controlPage:
		m.handlePageKey(key)
	case controlEncrypted, controlGroup, controlFetch:
		if key == "enter" || key == " " {
			return m, m.activate()
		}
	}

	return m, nil
}

func (m *Model) handleLimitKey(key string) {
	state := m.session.State()
	switch key {
	case "left", "h":
		state.SetLimit(state.Limit - limitStep)
	case "right", "l":
		state.SetLimit(state.Limit + limitStep)
	case "pgdown":
		state.SetLimit(state.Limit - limitPageStep)
	case "pgup":
		state.SetLimit(state.Limit + limitPageStep)
	}
}

func (m *Model) handlePageKey(key string) {
	state := m.session.State()
	switch key {
	case "up", "k":
		m.editingPage = false
		state.SetPage(state.Page + 1)
	case "down", "j":
		m.editingPage = false
		state.SetPage(state.Page - 1)
	case "enter", " ":
		m.editingPage = false
	case "backspace":
		if !m.editingPage {
			m.startPageEdit(strconv.Itoa(state.Page))
		}
		if m.pageBuf != "" {
			m.pageBuf = m.pageBuf[:len(m.pageBuf)-1]
		}
		m.applyPageBuf()
	default:
		if len(key) != 1 || key[0] < '0' || key[0] > '9' {
			return
		}
		if !m.editingPage {
			m.startPageEdit("")
		}
		if len(m.pageBuf) < maxPageDigits {
			m.pageBuf += key
		}
		m.applyPageBuf()
	}
}

func (m *Model) startPageEdit(buf string) {
	m.editingPage = true
	m.pageBuf = buf
}

// пустой ввод дает 0, сервер ответит ошибкой валидации
func (m *Model) applyPageBuf() {
	n, err := strconv.Atoi(m.pageBuf)
	if err != nil {
		n = 0
	}
	m.session.State().SetPage(n)
}

func (m *Model) moveFocus(delta int) {
	m.editingPage = false
	m.focus = control((int(m.focus) + delta + int(controlCount)) % int(controlCount))
}

func (m *Model) activate() tea.Cmd {
	state := m.session.State()
	switch m.focus {
	case controlEncrypted:
		state.ToggleEncrypted()
	case controlGroup:
		state.ToggleGroupDuplicates()
	case controlFetch:
		return m.fetch()
	}
	return nil
}

// fetch запускает загрузку с текущим состоянием. Пока идет загрузка, повторные нажатия игнорируются.
func (m *Model) fetch() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	m.editingPage = false

	ctx, loader, state := m.ctx, m.loader, *m.session.State()
	return func() tea.Msg {
		return fetchResultMsg{result: loader.Load(ctx, state)}
	}
}

func (m *Model) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	res := msg.result
	m.loading = false
	m.records = res.Records
	m.last = &res
	return m, nil
}

func (m *Model) Loading() bool {
	return m.loading
}

func (m *Model) Records() dashboard.RecordSet {
	return m.records
}

// Message - текст ошибки последней загрузки
func (m *Model) Message() string {
	if m.last == nil {
		return ""
	}
	return m.last.Message()
}

// Run запускает TUI в альтернативном экране до выхода пользователя
func Run(ctx context.Context, session *dashboard.Session, loader Loader, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(ctx, session, loader), opts...)
	_, err := p.Run()
	return err
}
