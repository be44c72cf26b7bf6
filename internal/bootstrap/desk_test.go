package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/startdash/internal/application/port"
	mock_port "github.com/bnema/startdash/internal/application/port/mocks"
	"github.com/bnema/startdash/internal/bootstrap"
	"github.com/bnema/startdash/internal/config"
	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/infrastructure/persistence/memory"
	"github.com/bnema/startdash/internal/layout"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/loop"
	"github.com/bnema/startdash/internal/ui/widgets"
)

type staticWeather struct{}

func (staticWeather) Current(context.Context, float64, float64) (*entity.Forecast, error) {
	return &entity.Forecast{TemperatureC: 12, Symbol: "clearsky_day"}, nil
}

func testContext() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

func services(kv port.KeyValueStore) bootstrap.Services {
	return bootstrap.Services{
		KV:        kv,
		Scheduler: loop.NewManual(),
		Weather:   staticWeather{},
		ReadFile: func(string) ([]byte, error) {
			return nil, errors.New("no scripts in this test")
		},
	}
}

func ids(d *bootstrap.Desk) []string {
	var out []string
	for _, c := range d.Components() {
		out = append(out, c.ID())
	}
	return out
}

func TestNewDesk_MountsEnabledWidgets(t *testing.T) {
	cfg := config.DefaultConfig()

	d, err := bootstrap.NewDesk(testContext(), cfg, services(memory.NewStore()), 120, 40)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, []string{widgets.MealPlanID, widgets.LinksID, widgets.ClockID, widgets.WeatherID}, ids(d))
	assert.Equal(t, 4, d.Manager().Len())
	assert.Equal(t, 4, d.Document().Body().ChildCount())
	assert.Equal(t, bootstrap.WindowOptions(cfg.Window), d.Manager().Options())
}

func TestNewDesk_SkipsDisabledWidgets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Widgets.MealPlan.Enabled = false
	cfg.Widgets.Clock.Enabled = false

	svc := services(memory.NewStore())
	svc.Weather = nil
	d, err := bootstrap.NewDesk(testContext(), cfg, svc, 120, 40)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, []string{widgets.LinksID}, ids(d))
}

func TestNewDesk_RestoresPersistedLayout(t *testing.T) {
	ctx := testContext()
	kv := memory.NewStore()
	store := layout.NewStore(kv)
	require.NoError(t, store.SavePosition(ctx, widgets.ClockID, entity.Position{X: 70, Y: 12}))
	require.NoError(t, store.SaveSize(ctx, widgets.LinksID, entity.NewSize(50, 14)))

	d, err := bootstrap.NewDesk(ctx, config.DefaultConfig(), services(kv), 120, 40)
	require.NoError(t, err)
	defer d.Close()

	clock, ok := d.Manager().Component(widgets.ClockID)
	require.True(t, ok)
	assert.Equal(t, entity.Position{X: 70, Y: 12}, clock.Position())

	links, ok := d.Manager().Component(widgets.LinksID)
	require.True(t, ok)
	assert.Equal(t, 50, links.Size().WidthOr(0))
	assert.Equal(t, 14, *links.Node().Style.Height)
}

func TestNewDesk_LoadsScripts(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Widgets = config.WidgetsConfig{
		Scripts: []config.ScriptConfig{
			{ID: "greeter", File: "/scripts/greeter.js", Placement: config.Placement{X: 3, Y: 4}},
			{ID: "missing", File: "/scripts/missing.js"},
		},
	}

	ctrl := gomock.NewController(t)
	notifier := mock_port.NewMockNotification(ctrl)
	notifier.EXPECT().
		Show(gomock.Any(), "Could not load script missing", port.NotificationWarning, gomock.Any()).
		Return(port.NotificationID("1"))

	svc := services(memory.NewStore())
	svc.Notifier = notifier
	svc.ReadFile = func(name string) ([]byte, error) {
		if name == "/scripts/greeter.js" {
			return []byte(`function render(n) { return "hello " + n; }`), nil
		}
		return nil, errors.New("not found")
	}

	d, err := bootstrap.NewDesk(testContext(), cfg, svc, 120, 40)
	require.NoError(t, err)
	defer d.Close()

	require.Equal(t, []string{"greeter"}, ids(d))
	node := d.Document().ElementByID("greeter")
	require.NotNil(t, node)
	assert.Contains(t, node.TextContent(), "hello 0")
	assert.Equal(t, 3, node.Style.Left)
}

func TestDesk_ApplyUpdatesRunningWidgets(t *testing.T) {
	cfg := config.DefaultConfig()
	d, err := bootstrap.NewDesk(testContext(), cfg, services(memory.NewStore()), 120, 40)
	require.NoError(t, err)
	defer d.Close()

	next := config.DefaultConfig()
	next.Window.MinWidth = 42
	next.Widgets.Links.Title = "homepage"

	d.Apply(next)

	assert.Equal(t, 42, d.Manager().Options().MinWidth)
	title := d.Document().ElementByID(widgets.LinksID).QuerySelector(".titleb")
	require.NotNil(t, title)
	assert.Equal(t, "homepage", title.TextContent())
}

func TestDesk_CloseUnmountsEverything(t *testing.T) {
	d, err := bootstrap.NewDesk(testContext(), config.DefaultConfig(), services(memory.NewStore()), 120, 40)
	require.NoError(t, err)

	d.Close()

	assert.Zero(t, d.Manager().Len())
	assert.Zero(t, d.Document().Body().ChildCount())
	assert.Empty(t, d.Components())
}
