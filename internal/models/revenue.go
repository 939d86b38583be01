package models

// Revenue is the monthly revenue series shown on the dashboard chart, in whole dollars.
type Revenue struct {
	Month   string `gorm:"type:varchar(4);primaryKey" json:"month"`
	Revenue int64  `gorm:"not null" json:"revenue"`
}

func (Revenue) TableName() string { return "revenue" }
