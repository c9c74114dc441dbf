package domain

// DashboardStat is one tile on the studio dashboard.
type DashboardStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
