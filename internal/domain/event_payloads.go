package domain

// CaseOpenedPayload is the event payload for case.opened events
type CaseOpenedPayload struct {
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	CaseID       string  `json:"case_id"`
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	ItemRarity   string  `json:"item_rarity"`
	ItemPrice    string  `json:"item_price"`
	BonusPercent float64 `json:"bonus_percent"`
	Timestamp    int64   `json:"timestamp"`
}

// ItemSoldPayload is the event payload for item.sold events
type ItemSoldPayload struct {
	UserID      string `json:"user_id"`
	InventoryID string `json:"inventory_id"`
	ItemID      string `json:"item_id"`
	Amount      string `json:"amount"`
	Timestamp   int64  `json:"timestamp"`
}

// UpgradeCompletedPayload is the event payload for upgrade.completed events
type UpgradeCompletedPayload struct {
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	TargetItemID string  `json:"target_item_id"`
	SourceCount  int     `json:"source_count"`
	Chance       float64 `json:"chance"`
	Success      bool    `json:"success"`
	Timestamp    int64   `json:"timestamp"`
}

// MinigamePlayedPayload is the event payload for minigame.played events
type MinigamePlayedPayload struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Game      Game    `json:"game"`
	Outcome   Outcome `json:"outcome"`
	Timestamp int64   `json:"timestamp"`
}

// DailyResetPayload is the event payload for daily_reset.complete events
type DailyResetPayload struct {
	DayStart        int64 `json:"day_start"`
	RecordsAffected int64 `json:"records_affected"`
}
