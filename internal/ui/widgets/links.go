package widgets

import (
	"html"
	"strings"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
)

const (
	defaultLinksTitle    = "startdash"
	defaultLinksSubtitle = "Either it goes well, or it goes over..."
)

// Link is a named URL.
type Link struct {
	Name string
	URL  string
}

// LinkCategory is a titled group of links.
type LinkCategory struct {
	Title string
	Links []Link
}

// LinksOptions configures a Links panel.
type LinksOptions struct {
	Title      string
	Subtitle   string
	Categories []LinkCategory
	// OpenLinks hands clicked links to the opener instead of only showing them.
	OpenLinks bool
	Placement Placement
}

// Links is the main panel: a title bar, a subtitle bar and categories of links.
// Both bars are drag handles; clicking a link emits a notice.
type Links struct {
	*component.Component

	deps  Dependencies
	opts  LinksOptions
	click clickBinding
}

// NewLinks creates an unmounted, resizable links panel.
func NewLinks(deps Dependencies, opts LinksOptions) *Links {
	if opts.Title == "" {
		opts.Title = defaultLinksTitle
	}
	if opts.Subtitle == "" {
		opts.Subtitle = defaultLinksSubtitle
	}
	l := &Links{deps: deps.forWindow(LinksID), opts: opts}
	cfg := component.NewConfig(LinksID)
	cfg.Resizable = true
	opts.Placement.apply(&cfg)
	l.Component = component.New(cfg, l)
	return l
}

// Render implements component.Renderer.
func (l *Links) Render() component.RenderResult {
	var b strings.Builder
	b.WriteString(`<div class="window-bg">`)
	b.WriteString(`<div class="titlediv drag-handle"><div class="titleb">`)
	b.WriteString(html.EscapeString(l.opts.Title))
	b.WriteString(`</div></div>`)
	b.WriteString(`<div class="windowbackgroundarea1 drag-handle"><div class="subtitle">`)
	b.WriteString(html.EscapeString(l.opts.Subtitle))
	b.WriteString(`</div></div>`)
	b.WriteString(`<div class="windowbackgroundarea2"><div class="category">`)
	for _, category := range l.opts.Categories {
		b.WriteString(`<div class="categorytitle">`)
		b.WriteString(html.EscapeString(category.Title))
		b.WriteString(`</div><div class="categorycontent">`)
		for i, link := range category.Links {
			if i > 0 {
				b.WriteString(" - ")
			}
			b.WriteString(`<a href="`)
			b.WriteString(html.EscapeString(link.URL))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(link.Name))
			b.WriteString(`</a>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></div></div>`)
	return component.Markup(b.String())
}

// SetContent replaces title, subtitle, categories and the open policy, then
// re-renders when mounted.
func (l *Links) SetContent(opts LinksOptions) {
	opts.Placement = l.opts.Placement
	if opts.Title == "" {
		opts.Title = defaultLinksTitle
	}
	if opts.Subtitle == "" {
		opts.Subtitle = defaultLinksSubtitle
	}
	l.opts = opts
	if l.IsMounted() {
		refresh(l.deps.context(), l.Component)
	}
}

// OnMount binds link clicks.
func (l *Links) OnMount() { l.click.rebind(l.Component, l.onClick) }

// OnUpdate rebinds link clicks on the new node.
func (l *Links) OnUpdate() { l.click.rebind(l.Component, l.onClick) }

// OnUnmount drops the click listener.
func (l *Links) OnUnmount() { l.click.unbind() }

func (l *Links) onClick(e *dom.Event) {
	if e.Target == nil {
		return
	}
	a := e.Target.ClosestWithin("a", l.Node())
	if a == nil {
		return
	}
	href, ok := a.Attr("href")
	if !ok || href == "" {
		return
	}
	e.PreventDefault()

	if l.opts.OpenLinks {
		openURL(l.deps, href)
		return
	}
	l.deps.notify(href, port.NotificationInfo)
}
