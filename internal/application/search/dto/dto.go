package dto

import (
	entrydto "github.com/rollerweb/roller/internal/application/entry/dto"
	"github.com/rollerweb/roller/internal/application/pager"
)

type SearchEntriesRequest struct {
	Weblog   string `uri:"handle" validate:"required,handle"`
	Query    string `form:"q" validate:"required,max=255"`
	Category string `form:"cat" validate:"max=255"`
	Locale   string `form:"locale" validate:"max=32"`
	Page     int    `form:"-" validate:"gte=0,lte=1000000"`
}

// DayResponse holds the hits published on one day, newest first.
type DayResponse struct {
	Date    string                    `json:"date"`
	Entries []*entrydto.EntryResponse `json:"entries"`
}

type SearchEntriesResponse struct {
	Weblog     string           `json:"weblog"`
	Query      string           `json:"query"`
	Category   string           `json:"category,omitempty"`
	Locale     string           `json:"locale"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	HasMore    bool             `json:"has_more"`
	Hits       int              `json:"hits"`
	Navigation pager.Navigation `json:"navigation"`
	Days       []DayResponse    `json:"days"`
}
