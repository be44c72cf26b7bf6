package widgets

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/logging"
	"github.com/bnema/startdash/internal/ui/component"
	"github.com/bnema/startdash/internal/ui/dom"
)

const (
	mealPlanTitle = "Meal plan"
	// ClassPrintButton marks the meal plan's export button.
	ClassPrintButton = "print-button"
)

// MealPlanOptions configures a MealPlan.
type MealPlanOptions struct {
	// Data defaults to DefaultMealPlan.
	Data      *MealPlanData
	Placement Placement
}

// MealPlan lists meal options and daily rules, and exports them through a
// port.Printer when its print button is clicked.
type MealPlan struct {
	*component.Component

	deps    Dependencies
	printer port.Printer
	data    MealPlanData
	click   clickBinding
}

// NewMealPlan creates an unmounted, resizable meal plan.
func NewMealPlan(deps Dependencies, printer port.Printer, opts MealPlanOptions) *MealPlan {
	data := DefaultMealPlan()
	if opts.Data != nil {
		data = *opts.Data
	}
	m := &MealPlan{deps: deps.forWindow(MealPlanID), printer: printer, data: data}
	cfg := component.NewConfig(MealPlanID)
	cfg.Resizable = true
	opts.Placement.apply(&cfg)
	m.Component = component.New(cfg, m)
	return m
}

// Render implements component.Renderer.
func (m *MealPlan) Render() component.RenderResult {
	var b strings.Builder
	b.WriteString(`<div class="mealplan-window">`)
	b.WriteString(`<div class="mealplan-header drag-handle"><h3>🍽️ `)
	b.WriteString(mealPlanTitle)
	b.WriteString(`</h3><button class="print-button" title="Print meal plan">🖨️</button></div>`)
	b.WriteString(`<div class="mealplan-content">`)

	writeOptionsSection(&b, "Breakfast", m.data.Breakfast)
	writeOptionsSection(&b, "Lunch", m.data.Lunch)
	writeOptionsSection(&b, "Dinner", m.data.Dinner)
	writeListSection(&b, "Snacks", m.data.Snacks)

	b.WriteString(`<div class="meal-section"><h4>Training</h4>`)
	fmt.Fprintf(&b, `<p><strong>Before:</strong> %s</p>`, escapeJoin(m.data.Training.PreWorkout))
	fmt.Fprintf(&b, `<p><strong>After:</strong> %s</p>`, escapeJoin(m.data.Training.PostWorkout))
	fmt.Fprintf(&b, `<p><strong>Pizza rule:</strong> %s</p>`, html.EscapeString(m.data.Training.PizzaRule))
	b.WriteString(`</div>`)

	writeListSection(&b, "Daily checklist", m.data.DailyChecklist)
	b.WriteString(`</div></div>`)
	return component.Markup(b.String())
}

func writeOptionsSection(b *strings.Builder, title string, options []MealOption) {
	fmt.Fprintf(b, `<div class="meal-section"><h4>%s</h4><div class="meal-options">`, html.EscapeString(title))
	for _, option := range options {
		fmt.Fprintf(b, `<div class="meal-option"><strong>%s</strong><ul>`, html.EscapeString(option.Label))
		for _, item := range option.Items {
			fmt.Fprintf(b, `<li>%s</li>`, html.EscapeString(item))
		}
		b.WriteString(`</ul></div>`)
	}
	b.WriteString(`</div></div>`)
}

func writeListSection(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, `<div class="meal-section"><h4>%s</h4><ul>`, html.EscapeString(title))
	for _, item := range items {
		fmt.Fprintf(b, `<li>%s</li>`, html.EscapeString(item))
	}
	b.WriteString(`</ul></div>`)
}

func escapeJoin(items []string) string {
	return html.EscapeString(strings.Join(items, ", "))
}

// OnMount binds the print button.
func (m *MealPlan) OnMount() { m.click.rebind(m.Component, m.onClick) }

// OnUpdate rebinds the print button on the new node.
func (m *MealPlan) OnUpdate() { m.click.rebind(m.Component, m.onClick) }

// OnUnmount drops the click listener.
func (m *MealPlan) OnUnmount() { m.click.unbind() }

func (m *MealPlan) onClick(e *dom.Event) {
	if e.Target == nil || e.Target.ClosestWithin("."+ClassPrintButton, m.Node()) == nil {
		return
	}
	e.StopPropagation()
	m.Print()
}

// Print exports the plan. Failures surface as notices, never as errors.
func (m *MealPlan) Print() {
	ctx := m.deps.context()
	if m.printer == nil {
		m.deps.notify("Printing is not available", port.NotificationWarning)
		return
	}

	location, err := m.printer.Print(ctx, port.PrintJob{
		Title: mealPlanTitle,
		Body:  m.PrintText(),
	})
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to print meal plan")
		if errors.Is(err, port.ErrPrintBlocked) {
			m.deps.notify("Printing was blocked. Allow exports to print the meal plan.", port.NotificationError)
			return
		}
		m.deps.notify("Could not print the meal plan: "+err.Error(), port.NotificationError)
		return
	}
	m.deps.notify("Meal plan exported to "+location, port.NotificationSuccess)
}

// PrintText returns the printable plain-text document, dated with the
// current day.
func (m *MealPlan) PrintText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", strings.ToUpper(mealPlanTitle), m.deps.now().Format("2 January 2006"))

	printOptions := func(title string, options []MealOption) {
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(title))
		for _, option := range options {
			fmt.Fprintf(&b, "  %s\n", option.Label)
			for _, item := range option.Items {
				fmt.Fprintf(&b, "    - %s\n", item)
			}
		}
	}
	printList := func(title string, items []string) {
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(title))
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}

	printOptions("Breakfast", m.data.Breakfast)
	printOptions("Lunch", m.data.Lunch)
	printOptions("Dinner", m.data.Dinner)
	printList("Snacks", m.data.Snacks)

	fmt.Fprintf(&b, "\nTRAINING\n")
	fmt.Fprintf(&b, "  Before training: %s\n", strings.Join(m.data.Training.PreWorkout, ", "))
	fmt.Fprintf(&b, "  After training: %s\n", strings.Join(m.data.Training.PostWorkout, ", "))
	fmt.Fprintf(&b, "  Pizza rule: %s\n", m.data.Training.PizzaRule)

	printList("Daily checklist", m.data.DailyChecklist)
	return b.String()
}
