package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"logindash/internal/app/dashboard"
)

type fakeLoader struct {
	mu     sync.Mutex
	states []dashboard.ViewState
	result dashboard.Result
}

func (f *fakeLoader) Load(_ context.Context, state dashboard.ViewState) dashboard.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, state)
	res := f.result
	res.State = state
	return res
}

func (f *fakeLoader) Endpoint() string {
	return "http://localhost:8080/login-data"
}

func newTestModel(t *testing.T, loader *fakeLoader) *Model {
	t.Helper()
	return NewModel(context.Background(), dashboard.NewSession(), loader)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestModel_Defaults(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})

	assert.Equal(t, *dashboard.NewViewState(), *m.session.State())
	assert.Equal(t, controlLimit, m.focus)
	assert.Contains(t, m.View(), "User Logins")
	assert.Contains(t, m.View(), "Records limit: 5")
}

func TestModel_Limit(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})

	press(m, "right", "right")
	assert.Equal(t, 7, m.session.State().Limit)

	press(m, "pgup", "pgup", "pgup", "pgup", "pgup", "pgup", "pgup", "pgup", "pgup", "pgup")
	assert.Equal(t, dashboard.MaxLimit, m.session.State().Limit)

	press(m, "pgdown", "left")
	assert.Equal(t, 89, m.session.State().Limit)

	for i := 0; i < 15; i++ {
		press(m, "pgdown")
	}
	assert.Equal(t, dashboard.MinLimit, m.session.State().Limit)
}

func TestModel_Page(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})
	press(m, "tab")
	require.Equal(t, controlPage, m.focus)

	press(m, "up", "up")
	assert.Equal(t, 3, m.session.State().Page)

	press(m, "4", "2")
	assert.Equal(t, 42, m.session.State().Page)

	press(m, "backspace")
	assert.Equal(t, 4, m.session.State().Page)

	press(m, "down")
	assert.Equal(t, 3, m.session.State().Page)

	press(m, "backspace")
	assert.Equal(t, 0, m.session.State().Page)

	press(m, "x")
	assert.Equal(t, 0, m.session.State().Page)
}

func TestModel_Toggles(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})

	press(m, "tab", "tab", "enter")
	assert.False(t, m.session.State().IsEncrypted)
	press(m, " ")
	assert.True(t, m.session.State().IsEncrypted)

	press(m, "tab", "enter")
	assert.True(t, m.session.State().GroupDuplicates)

	press(m, "shift+tab")
	assert.Equal(t, controlEncrypted, m.focus)
}

func TestModel_FocusWraps(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})

	press(m, "shift+tab")
	assert.Equal(t, controlFetch, m.focus)
	press(m, "tab")
	assert.Equal(t, controlLimit, m.focus)
}

func TestModel_Fetch(t *testing.T) {
	rs, err := dashboard.ParseRecordSet([]byte(`[{"user_id":"u-1"}]`))
	require.NoError(t, err)
	loader := &fakeLoader{result: dashboard.Result{Records: rs}}
	m := newTestModel(t, loader)

	press(m, "right")
	cmd := press(m, "f")
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading data...")

	assert.Nil(t, press(m, "f"), "fetch ignored while loading")

	m.Update(cmd())

	assert.False(t, m.Loading())
	assert.Equal(t, 1, m.Records().Len())
	assert.Empty(t, m.Message())
	assert.Contains(t, m.View(), "u-1")

	require.Len(t, loader.states, 1)
	assert.Equal(t, 6, loader.states[0].Limit)
}

func TestModel_FetchButton(t *testing.T) {
	loader := &fakeLoader{}
	m := newTestModel(t, loader)

	press(m, "shift+tab")
	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Len(t, loader.states, 1)
}

func TestModel_FetchError(t *testing.T) {
	rs, err := dashboard.ParseRecordSet([]byte(`[{"user_id":"u-1"}]`))
	require.NoError(t, err)
	loader := &fakeLoader{result: dashboard.Result{Records: rs}}
	m := newTestModel(t, loader)

	m.Update(press(m, "f")())
	require.Equal(t, 1, m.Records().Len())

	loader.result = dashboard.Result{Err: &dashboard.StatusError{Code: 500}}
	m.Update(press(m, "f")())

	assert.True(t, m.Records().Empty())
	assert.Equal(t, "Error fetching data: 500", m.Message())
	assert.Contains(t, m.View(), "Error fetching data: 500")

	loader.result = dashboard.Result{Records: rs}
	m.Update(press(m, "f")())
	assert.Empty(t, m.Message())
	assert.Equal(t, 1, m.Records().Len())
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t, &fakeLoader{})

			cmd := press(m, k)
			require.NotNil(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			assert.True(t, ok)
		})
	}
}
