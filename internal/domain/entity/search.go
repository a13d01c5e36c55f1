package entity

import (
	"time"
)

// Search is one ingested snapshot of fare-search results. A Search and all of
// its itineraries and route links are created in a single transaction and are
// never mutated afterwards except for the Actual flag.
type Search struct {
	ID         uint      `gorm:"primaryKey"`
	SearchID   string    `gorm:"column:search_id;size:36;not null;uniqueIndex"`
	URL        string    `gorm:"column:url;size:2048;not null"`
	Timestamp  time.Time `gorm:"column:timestamp;not null"`
	RangeStart time.Time `gorm:"column:range_start;not null"`
	RangeEnd   time.Time `gorm:"column:range_end;not null"`
	Results    int       `gorm:"column:results;not null"`
	Actual     bool      `gorm:"column:actual;not null;index"`

	Itineraries []*Itinerary `gorm:"foreignKey:SearchRef"`
}

// TableName overrides the default table name
func (Search) TableName() string {
	return "search"
}
