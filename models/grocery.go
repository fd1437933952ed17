package models

type GroceryList struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	UserID    uint64 `gorm:"not null;index:user_list_created,priority:1"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name      string `gorm:"type:varchar(300)"`
	Deleted   bool   `gorm:"not null;default 0"`
	Items     []GroceryItem
}

type GroceryItem struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	GroceryListID uint64      `gorm:"not null;index:list_item_position,priority:1"`
	GroceryList   GroceryList `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name          string      `gorm:"type:varchar(300)"`
	Quantity      string      `gorm:"type:varchar(100)"`
	Done          bool        `gorm:"not null;default 0"`
	// Position is the manual sort order within the list
	Position uint16 `gorm:"index:list_item_position,priority:2"`
}
