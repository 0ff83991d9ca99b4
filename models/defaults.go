package models

// CategoryTemplate 默认类别模板
type CategoryTemplate struct {
	Name  string
	Icon  string
	Color string
}

// DefaultCategories 新用户注册时复制的默认类别列表
// 顺序固定，注册后用户可自行修改或归档
var DefaultCategories = []CategoryTemplate{
	// 收入类别（绿色系）
	{Name: "Salary", Icon: "banknote", Color: "#22C55E"},
	{Name: "Freelance", Icon: "laptop", Color: "#10B981"},
	{Name: "Investments", Icon: "trending-up", Color: "#059669"},
	{Name: "Gifts Received", Icon: "gift", Color: "#14B8A6"},

	// 支出类别
	{Name: "Groceries", Icon: "shopping-cart", Color: "#F97316"},
	{Name: "Dining Out", Icon: "utensils", Color: "#FB923C"},
	{Name: "Transportation", Icon: "car", Color: "#EAB308"},
	{Name: "Entertainment", Icon: "tv", Color: "#A855F7"},
	{Name: "Shopping", Icon: "shopping-bag", Color: "#EC4899"},
	{Name: "Healthcare", Icon: "heart-pulse", Color: "#EF4444"},
	{Name: "Utilities", Icon: "zap", Color: "#6366F1"},
	{Name: "Rent/Mortgage", Icon: "home", Color: "#8B5CF6"},
	{Name: "Insurance", Icon: "shield", Color: "#0EA5E9"},
	{Name: "Education", Icon: "graduation-cap", Color: "#06B6D4"},
	{Name: "Personal Care", Icon: "sparkles", Color: "#D946EF"},
	{Name: "Gifts Given", Icon: "gift", Color: "#F472B6"},
	{Name: "Subscriptions", Icon: "repeat", Color: "#64748B"},
	{Name: "Travel", Icon: "plane", Color: "#0284C7"},
	{Name: "Other", Icon: "more-horizontal", Color: "#6B7280"},
}
