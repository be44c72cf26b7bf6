package widgets_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/startdash/internal/application/port"
	mock_port "github.com/bnema/startdash/internal/application/port/mocks"
	"github.com/bnema/startdash/internal/ui/dom"
	"github.com/bnema/startdash/internal/ui/widgets"
)

func TestMealPlan_Render(t *testing.T) {
	h := newHarness(t)
	m := widgets.NewMealPlan(h.deps, nil, widgets.MealPlanOptions{})
	require.NoError(t, m.Mount(h.doc.Body()))
	node := m.Node()

	assert.Equal(t, widgets.MealPlanID, node.ID())
	assert.True(t, m.IsResizable())
	assert.NotNil(t, node.QuerySelector(".mealplan-header").Closest(".drag-handle"))
	assert.NotNil(t, node.QuerySelector("."+widgets.ClassPrintButton))

	sections := node.QuerySelectorAll(".meal-section")
	require.Len(t, sections, 6)
	assert.Len(t, sections[0].QuerySelectorAll(".meal-option"), 3)
	assert.Contains(t, sections[4].TextContent(), "Pizza rule:")
	assert.Len(t, sections[5].QuerySelectorAll("li"), 3)
}

func TestMealPlan_CustomData(t *testing.T) {
	h := newHarness(t)
	data := widgets.MealPlanData{
		Breakfast: []widgets.MealOption{{ID: "b", Label: "Toast & jam", Items: []string{"toast"}}},
	}
	m := widgets.NewMealPlan(h.deps, nil, widgets.MealPlanOptions{Data: &data})
	require.NoError(t, m.Mount(h.doc.Body()))

	assert.Equal(t, "Toast & jam", m.Node().QuerySelector(".meal-option").QuerySelector("strong").TextContent())
}

func TestMealPlan_PrintButton(t *testing.T) {
	tests := []struct {
		name     string
		location string
		err      error
		notice   string
		kind     port.NotificationType
	}{
		{
			name:     "exported",
			location: "/exports/meal-plan.txt",
			notice:   "Meal plan exported to /exports/meal-plan.txt",
			kind:     port.NotificationSuccess,
		},
		{
			name:   "blocked",
			err:    fmt.Errorf("open export dir: %w", port.ErrPrintBlocked),
			notice: "Printing was blocked. Allow exports to print the meal plan.",
			kind:   port.NotificationError,
		},
		{
			name:   "other failure",
			err:    errors.New("disk full"),
			notice: "Could not print the meal plan: disk full",
			kind:   port.NotificationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			printer := mock_port.NewMockPrinter(ctrl)
			notifier := mock_port.NewMockNotification(ctrl)
			h := newHarness(t)
			h.deps.Notifier = notifier
			m := widgets.NewMealPlan(h.deps, printer, widgets.MealPlanOptions{})
			require.NoError(t, m.Mount(h.doc.Body()))

			bubbled := 0
			h.doc.AddEventListener(dom.EventClick, func(*dom.Event) { bubbled++ })

			gomock.InOrder(
				printer.EXPECT().Print(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, job port.PrintJob) (string, error) {
						assert.Equal(t, "Meal plan", job.Title)
						assert.Contains(t, job.Body, "17 October 2026")
						assert.Contains(t, job.Body, "BREAKFAST")
						assert.Contains(t, job.Body, "    - Oatmeal")
						return tt.location, tt.err
					}),
				notifier.EXPECT().Show(gomock.Any(), tt.notice, tt.kind, gomock.Any()),
			)

			e := h.click(m.Node().QuerySelector("." + widgets.ClassPrintButton))

			assert.True(t, e.PropagationStopped())
			assert.Zero(t, bubbled)
		})
	}
}

func TestMealPlan_PrintButtonRebindsAfterUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	printer := mock_port.NewMockPrinter(ctrl)
	h := newHarness(t)
	m := widgets.NewMealPlan(h.deps, printer, widgets.MealPlanOptions{})
	require.NoError(t, m.Mount(h.doc.Body()))
	require.NoError(t, m.Update())

	printer.EXPECT().Print(gomock.Any(), gomock.Any()).Return("/tmp/plan.txt", nil).Times(1)
	h.click(m.Node().QuerySelector("." + widgets.ClassPrintButton))

	// A click elsewhere in the panel does not print.
	h.click(m.Node().QuerySelector(".meal-section"))
}

func TestMealPlan_PrintWithoutPrinter(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock_port.NewMockNotification(ctrl)
	h := newHarness(t)
	h.deps.Notifier = notifier
	m := widgets.NewMealPlan(h.deps, nil, widgets.MealPlanOptions{})

	notifier.EXPECT().Show(gomock.Any(), "Printing is not available", port.NotificationWarning, gomock.Any())
	m.Print()
}
