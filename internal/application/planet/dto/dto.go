package dto

import (
	"time"

	"github.com/rollerweb/roller/internal/domain/planet"
)

type RefreshResult struct {
	Subscriptions int      `json:"subscriptions"`
	Failed        int      `json:"failed"`
	NewEntries    int      `json:"new_entries"`
	Errors        []string `json:"errors,omitempty"`
}

type GenerateResult struct {
	Files []string `json:"files"`
}

// GroupPage is one group and its newest entries.
type GroupPage struct {
	Handle  string
	Title   string
	Entries []planet.GroupEntry
}

// PageData is the template context of every generated planet page. Group is
// set only while rendering a group's own page.
type PageData struct {
	Date      time.Time
	Title     string
	Groups    []GroupPage
	Group     *GroupPage
	Utilities Utilities
}
