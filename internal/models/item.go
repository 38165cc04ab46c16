// internal/models/item.go
package models

import "time"

// Item 目录中的一条物品记录
// 物品创建后不可变更，生命周期为只增不删
type Item struct {
	ID               int       `json:"id"`
	ItemName         string    `json:"itemName"`
	ItemType         string    `json:"itemType"`
	ItemDescription  string    `json:"itemDescription"`
	CoverImage       string    `json:"coverImage"`
	AdditionalImages []string  `json:"additionalImages"`
	CreatedAt        time.Time `json:"createdAt"`
}
