package store

import (
	"time"

	"kayaglobe/internal/contractor"
	"kayaglobe/internal/feed"
)

// FeedItem is a stored procurement entry. Columns may be empty; the API
// fills in defaults when it responds.
type FeedItem struct {
	ID                    string `gorm:"primaryKey"`
	SpecDescription       string
	DateLastUpdated       string `gorm:"index"`
	ResponsibleContractor string `gorm:"index"`
	LeadTime              int
	ProcurementStatus     string
	SubmittalNumber       string
}

func (FeedItem) TableName() string { return "feed_items" }

func FeedItemFrom(it feed.Item) FeedItem {
	return FeedItem{
		ID:                    it.ID,
		SpecDescription:       it.Description,
		DateLastUpdated:       it.UpdatedAt,
		ResponsibleContractor: it.Contractor,
		LeadTime:              it.LeadTime,
		ProcurementStatus:     it.Status,
		SubmittalNumber:       it.SubmittalNumber,
	}
}

func (f FeedItem) Item() feed.Item {
	return feed.Item{
		ID:              f.ID,
		Description:     f.SpecDescription,
		UpdatedAt:       f.DateLastUpdated,
		Contractor:      f.ResponsibleContractor,
		LeadTime:        f.LeadTime,
		Status:          f.ProcurementStatus,
		SubmittalNumber: f.SubmittalNumber,
	}
}

// UniqueContractor is a geocoded contractor derived from the feed.
type UniqueContractor struct {
	ID              uint   `gorm:"primaryKey"`
	ContractorName  string `gorm:"index"`
	Latitude        float64
	Longitude       float64
	Item            string
	SubmittalNumber string
	LeadTime        int
	CreatedAt       time.Time
}

func (UniqueContractor) TableName() string { return "unique_contractors" }

func (u UniqueContractor) Contractor() contractor.Contractor {
	return contractor.Contractor{
		Name:            u.ContractorName,
		Lat:             u.Latitude,
		Lng:             u.Longitude,
		Item:            u.Item,
		SubmittalNumber: u.SubmittalNumber,
		LeadTime:        u.LeadTime,
	}
}

var models = []any{&FeedItem{}, &UniqueContractor{}}
