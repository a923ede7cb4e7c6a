package core

// DefaultCategories is the starter classification set a fresh install gets.
// IDs are stable slugs so seeded data can reference them across backends.
func DefaultCategories() []Category {
	return []Category{
		{ID: "salary", Name: "Salary", Icon: "💵", Color: "#15BE78", Type: IncomeCategory, Active: true},
		{ID: "freelance", Name: "Freelance", Icon: "💻", Color: "#3247FF", Type: IncomeCategory, Active: true},
		{ID: "investments", Name: "Investments", Icon: "📈", Color: "#8B5CF6", Type: IncomeCategory, Active: true},
		{ID: "gift", Name: "Gift", Icon: "🎁", Color: "#EC4899", Type: IncomeCategory, Active: true},
		{ID: "other-income", Name: "Other income", Icon: "💰", Color: "#6B7280", Type: IncomeCategory, Active: true},

		{ID: "food", Name: "Food", Icon: "🍔", Color: "#EF4444", Type: ExpenseCategory, Active: true},
		{ID: "groceries", Name: "Groceries", Icon: "🛒", Color: "#F97316", Type: ExpenseCategory, Active: true},
		{ID: "transport", Name: "Transport", Icon: "🚗", Color: "#F59E0B", Type: ExpenseCategory, Active: true},
		{ID: "housing", Name: "Housing", Icon: "🏠", Color: "#84CC16", Type: ExpenseCategory, Active: true},
		{ID: "health", Name: "Health", Icon: "🏥", Color: "#22C55E", Type: ExpenseCategory, Active: true},
		{ID: "education", Name: "Education", Icon: "📚", Color: "#14B8A6", Type: ExpenseCategory, Active: true},
		{ID: "leisure", Name: "Leisure", Icon: "🎮", Color: "#06B6D4", Type: ExpenseCategory, Active: true},
		{ID: "clothing", Name: "Clothing", Icon: "👕", Color: "#3B82F6", Type: ExpenseCategory, Active: true},
		{ID: "subscriptions", Name: "Subscriptions", Icon: "📱", Color: "#6366F1", Type: ExpenseCategory, Active: true},
		{ID: "pets", Name: "Pets", Icon: "🐶", Color: "#A855F7", Type: ExpenseCategory, Active: true},
		{ID: "travel", Name: "Travel", Icon: "✈️", Color: "#EC4899", Type: ExpenseCategory, Active: true},
		{ID: "other-expense", Name: "Other expenses", Icon: "💸", Color: "#6B7280", Type: ExpenseCategory, Active: true},
	}
}
