package styles_test

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/startdash/internal/cli/styles"
	"github.com/bnema/startdash/internal/domain/build"
	"github.com/bnema/startdash/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		name   string
		layout entity.WindowLayout
		want   table.Row
	}{
		{
			name:   "position only",
			layout: entity.WindowLayout{ID: "clock-component", Position: &entity.Position{X: 4, Y: 9}},
			want:   table.Row{"clock-component", "4", "9", "-", "-"},
		},
		{
			name: "size with one dimension",
			layout: entity.WindowLayout{
				ID:   "links-component",
				Size: &entity.Size{Width: intPtr(40)},
			},
			want: table.Row{"links-component", "-", "-", "40", "-"},
		},
		{
			name: "full geometry",
			layout: entity.WindowLayout{
				ID:       "weather-component",
				Position: &entity.Position{X: -3, Y: 0},
				Size:     &entity.Size{Width: intPtr(20), Height: intPtr(6)},
			},
			want: table.Row{"weather-component", "-3", "0", "20", "6"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.LayoutRow(tt.layout))
		})
	}
}

func TestTableWidth(t *testing.T) {
	assert.Equal(t, 24+6+6+8+8+10, styles.TableWidth(styles.LayoutTableColumns()))
}

func TestLayoutRenderer_RenderTable(t *testing.T) {
	r := styles.NewLayoutRenderer(styles.NewTheme())

	out := r.RenderTable("/tmp/startdash.sqlite", []entity.WindowLayout{
		{ID: "clock-component", Position: &entity.Position{X: 12, Y: 3}},
	})
	assert.Contains(t, out, "Saved layout of 1 windows")
	assert.Contains(t, out, "clock-component")
	assert.Contains(t, out, "12")

	empty := r.RenderTable("/tmp/startdash.sqlite", nil)
	assert.Contains(t, empty, "No saved layout")
	assert.Contains(t, empty, "/tmp/startdash.sqlite")
}

func TestLayoutRenderer_Messages(t *testing.T) {
	r := styles.NewLayoutRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderReset("clock-component"), "clock-component")
	assert.Contains(t, r.RenderResetAll(3), "3")
	assert.Contains(t, r.RenderCanceled(), "Nothing changed")
	assert.Contains(t, r.RenderError(errors.New("disk full")), "disk full")
}

func TestConfigRenderer(t *testing.T) {
	r := styles.NewConfigRenderer(styles.NewTheme())

	info := r.RenderConfigInfo("/home/u/.config/startdash/config.toml", "/data/startdash.sqlite", "/state/logs")
	assert.Contains(t, info, "config.toml")
	assert.Contains(t, info, "startdash.sqlite")
	assert.Contains(t, info, "/state/logs")

	assert.Contains(t, r.RenderNoConfigFile("/x/config.toml"), "created on first run")
	assert.Contains(t, r.RenderSchemaWritten("/x/schema.json"), "/x/schema.json")
	assert.Contains(t, r.RenderError(errors.New("bad toml")), "bad toml")
}

func TestAboutRenderer(t *testing.T) {
	r := styles.NewAboutRenderer(styles.NewTheme())

	out := r.Render(build.Info{Version: "v1.2.0", GoVersion: "go1.25"})
	assert.Contains(t, out, "v1.2.0")
	assert.Contains(t, out, "go1.25")
	assert.Contains(t, out, "unknown", "missing fields are labelled")
	assert.Contains(t, out, build.Repository)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModel(t *testing.T) {
	theme := styles.NewTheme()

	t.Run("defaults to no", func(t *testing.T) {
		m := styles.NewConfirm(theme, "Reset?")
		assert.Contains(t, m.View(), "Reset?")

		next, cmd := m.Update(key("enter"))
		c := next.(styles.ConfirmModel)
		assert.True(t, c.Done())
		assert.False(t, c.Result())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("toggle then confirm", func(t *testing.T) {
		var m tea.Model = styles.NewConfirm(theme, "Reset?")
		m, _ = m.Update(key("right"))
		m, _ = m.Update(key("enter"))
		assert.True(t, m.(styles.ConfirmModel).Result())
	})

	t.Run("y answers directly", func(t *testing.T) {
		m, _ := styles.NewConfirm(theme, "Reset?").Update(key("y"))
		assert.True(t, m.(styles.ConfirmModel).Result())
		assert.Empty(t, m.View())
	})

	t.Run("esc cancels", func(t *testing.T) {
		var m tea.Model = styles.NewConfirm(theme, "Reset?")
		m, _ = m.Update(key("right"))
		m, cmd := m.Update(key("esc"))
		c := m.(styles.ConfirmModel)
		assert.True(t, c.Canceled)
		assert.False(t, c.Result())
		assert.NotNil(t, cmd)
	})
}
