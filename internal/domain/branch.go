package domain

import "time"

type ChurchBranch struct {
	ID        BranchID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:ux_branches_name" json:"name"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (ChurchBranch) TableName() string { return "church_branches" }
