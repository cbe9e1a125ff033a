package network

import "time"

// Link is one mutual Loaner<->Loanee edge. A single row represents both
// directions, so a connection is always visible from either side.
type Link struct {
	LoanerID  string    `gorm:"column:loaner_id;primaryKey;size:32" json:"loaner_id"`
	LoaneeID  string    `gorm:"column:loanee_id;primaryKey;size:32;index:idx_network_links_loanee" json:"loanee_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Link) TableName() string { return "network_links" }
