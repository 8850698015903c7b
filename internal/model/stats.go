package model

import "github.com/shopspring/decimal"

// StatusCount is an order count grouped by status.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int64       `json:"count"`
}

// DailyCount is a per-day row count for the recent-activity series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DailyRevenue is a per-day order count and revenue sum.
type DailyRevenue struct {
	Date    string          `json:"date"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopBuyer is a user ranked by order count for the admin dashboard.
type TopBuyer struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	OrderCount int64           `json:"orderCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

// OrderStats aggregates the admin order dashboard numbers.
type OrderStats struct {
	TotalOrders  int64                 `json:"totalOrders"`
	TotalRevenue decimal.Decimal       `json:"totalRevenue"`
	StatusCounts map[OrderStatus]int64 `json:"statusCounts"`
	RecentOrders []DailyRevenue        `json:"recentOrders"`
}

// UserStats aggregates the admin user dashboard numbers.
type UserStats struct {
	TotalUsers          int64        `json:"totalUsers"`
	AdminCount          int64        `json:"adminCount"`
	RecentRegistrations []DailyCount `json:"recentRegistrations"`
	TopUsers            []TopBuyer   `json:"topUsers"`
}
