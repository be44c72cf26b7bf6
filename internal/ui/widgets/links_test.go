package widgets_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/startdash/internal/application/port"
	mock_port "github.com/bnema/startdash/internal/application/port/mocks"
	"github.com/bnema/startdash/internal/ui/dom"
	"github.com/bnema/startdash/internal/ui/widgets"
)

func linkOptions() widgets.LinksOptions {
	return widgets.LinksOptions{
		Title:    "Home <1>",
		Subtitle: "sub",
		Categories: []widgets.LinkCategory{
			{Title: "DEV", Links: []widgets.Link{
				{Name: "Go", URL: "https://go.dev"},
				{Name: "Github", URL: "https://github.com"},
			}},
			{Title: "NEWS", Links: []widgets.Link{{Name: "NRK", URL: "https://www.nrk.no/"}}},
		},
		Placement: widgets.Placement{X: 12, Y: 6, Width: 96, Height: 24},
	}
}

func mountLinks(t *testing.T, h *harness, opts widgets.LinksOptions) *widgets.Links {
	t.Helper()
	l := widgets.NewLinks(h.deps, opts)
	require.NoError(t, l.Mount(h.doc.Body()))
	return l
}

func TestLinks_Render(t *testing.T) {
	h := newHarness(t)
	l := mountLinks(t, h, linkOptions())
	node := l.Node()

	assert.True(t, l.IsResizable())
	assert.Equal(t, 96, l.Size().WidthOr(0))
	assert.Equal(t, "Home <1>", node.QuerySelector(".titleb").TextContent())
	assert.NotNil(t, node.QuerySelector(".titlediv").Closest(".drag-handle"))
	assert.True(t, node.QuerySelector(".windowbackgroundarea1").HasClass("drag-handle"))

	titles := node.QuerySelectorAll(".categorytitle")
	require.Len(t, titles, 2)
	assert.Equal(t, "DEV", titles[0].TextContent())

	anchors := node.QuerySelectorAll("a")
	require.Len(t, anchors, 3)
	href, ok := anchors[1].Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://github.com", href)
	assert.Equal(t, "Go - Github", node.QuerySelector(".categorycontent").TextContent())
}

func TestLinks_DefaultTitles(t *testing.T) {
	h := newHarness(t)
	l := mountLinks(t, h, widgets.LinksOptions{})

	assert.Equal(t, "startdash", l.Node().QuerySelector(".titleb").TextContent())
	assert.Empty(t, l.Node().QuerySelectorAll("a"))
}

func TestLinks_ClickEmitsNotice(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock_port.NewMockNotification(ctrl)
	h := newHarness(t)
	h.deps.Notifier = notifier
	l := mountLinks(t, h, linkOptions())

	notifier.EXPECT().Show(gomock.Any(), "https://go.dev", port.NotificationInfo, gomock.Any()).Return(port.NotificationID("1"))

	anchor := l.Node().QuerySelector("a")
	label := anchor.Children()[0]
	require.False(t, label.IsElement())

	e := h.click(label)
	assert.True(t, e.DefaultPrevented())
}

func TestLinks_ClickOutsideLinkIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newHarness(t)
	h.deps.Notifier = mock_port.NewMockNotification(ctrl)
	l := mountLinks(t, h, linkOptions())

	e := h.click(l.Node().QuerySelector(".categorytitle"))

	assert.False(t, e.DefaultPrevented())
}

func TestLinks_OpenLinks(t *testing.T) {
	tests := []struct {
		name    string
		openErr error
		notice  string
		kind    port.NotificationType
	}{
		{name: "opened", notice: "Opened https://www.nrk.no/", kind: port.NotificationInfo},
		{name: "opener fails", openErr: errors.New("no browser"), notice: "Could not open https://www.nrk.no/", kind: port.NotificationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock_port.NewMockNotification(ctrl)
			opener := mock_port.NewMockURLOpener(ctrl)
			h := newHarness(t)
			h.deps.Notifier = notifier
			h.deps.Opener = opener
			opts := linkOptions()
			opts.OpenLinks = true
			l := mountLinks(t, h, opts)

			gomock.InOrder(
				opener.EXPECT().Open(gomock.Any(), "https://www.nrk.no/").Return(tt.openErr),
				notifier.EXPECT().Show(gomock.Any(), tt.notice, tt.kind, gomock.Any()),
			)

			anchors := l.Node().QuerySelectorAll("a")
			h.click(anchors[2])
		})
	}
}

func TestLinks_ClickSurvivesUpdates(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock_port.NewMockNotification(ctrl)
	h := newHarness(t)
	h.deps.Notifier = notifier
	l := mountLinks(t, h, linkOptions())

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Update())
	}
	assert.Equal(t, 1, l.Node().ListenerCount(dom.EventClick))

	notifier.EXPECT().Show(gomock.Any(), "https://go.dev", port.NotificationInfo, gomock.Any())
	h.click(l.Node().QuerySelector("a"))
}

func TestLinks_SetContentRerenders(t *testing.T) {
	h := newHarness(t)
	l := mountLinks(t, h, linkOptions())
	old := l.Node()

	l.SetContent(widgets.LinksOptions{
		Title:      "New",
		Categories: []widgets.LinkCategory{{Title: "ONE", Links: []widgets.Link{{Name: "a", URL: "https://a.example"}}}},
	})

	assert.NotSame(t, old, l.Node())
	assert.Equal(t, "New", l.Node().QuerySelector(".titleb").TextContent())
	assert.Len(t, l.Node().QuerySelectorAll("a"), 1)
	assert.Equal(t, 96, l.Size().WidthOr(0), "geometry is not reset")
}
