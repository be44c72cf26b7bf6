package widgets

// MealOption is one interchangeable meal.
type MealOption struct {
	ID    string
	Label string
	Items []string
}

// TrainingRules holds eating rules around workouts.
type TrainingRules struct {
	PreWorkout  []string
	PostWorkout []string
	PizzaRule   string
}

// MealPlanData is the content of the meal plan panel.
type MealPlanData struct {
	Breakfast      []MealOption
	Lunch          []MealOption
	Dinner         []MealOption
	Snacks         []string
	Training       TrainingRules
	DailyChecklist []string
}

// DefaultMealPlan returns the built-in plan.
func DefaultMealPlan() MealPlanData {
	return MealPlanData{
		Breakfast: []MealOption{
			{ID: "breakfast_a", Label: "Oatmeal", Items: []string{"Oatmeal", "Berries", "Milk or protein powder"}},
			{ID: "breakfast_b", Label: "Eggs and bread", Items: []string{"2-3 eggs", "1-2 slices of wholegrain bread", "Tomato or bell pepper"}},
			{ID: "breakfast_c", Label: "Skyr", Items: []string{"Skyr or yoghurt", "Fruit", "A handful of nuts"}},
		},
		Lunch: []MealOption{
			{ID: "lunch_a", Label: "Crispbread", Items: []string{"3-4 crispbreads", "Cheese, turkey or fish spread", "Egg or cottage cheese"}},
			{ID: "lunch_b", Label: "Wrap", Items: []string{"Wrap or wholegrain baguette", "Chicken or tuna", "Vegetables"}},
			{ID: "lunch_c", Label: "Leftovers", Items: []string{"Meat or fish", "Potatoes or rice", "Vegetables"}},
		},
		Dinner: []MealOption{
			{ID: "dinner_a", Label: "Chicken dinner", Items: []string{"Chicken", "Potatoes or rice", "Vegetables"}},
			{ID: "dinner_b", Label: "Fish dinner", Items: []string{"Fish (saithe, salmon or cod)", "Mashed potatoes or rice", "Vegetables"}},
			{ID: "dinner_c", Label: "Pasta or rice dish", Items: []string{"Pasta or rice", "Minced meat", "Extra vegetables"}},
		},
		Snacks: []string{
			"Skyr or cottage cheese",
			"Fruit (banana, apple)",
			"Crispbread with toppings",
			"A handful of nuts",
			"Protein bar (max 1 per day)",
		},
		Training: TrainingRules{
			PreWorkout:  []string{"Fruit", "Yoghurt"},
			PostWorkout: []string{"Dinner", "Water"},
			PizzaRule:   "May replace dinner once or twice a week after training",
		},
		DailyChecklist: []string{
			"Protein with every meal",
			"Vegetables at least once",
			"1.5-2 litres of water",
		},
	}
}
