package dto

import (
	"time"

	"github.com/rollerweb/roller/internal/application/entry"
)

type GetEntryRequest struct {
	Weblog string `uri:"handle" validate:"required,handle"`
	Anchor string `uri:"anchor" validate:"required,max=255"`
}

// ModerateCommentRequest sets the status of one comment. UserID is the
// authenticated caller, never read from the request body.
type ModerateCommentRequest struct {
	Weblog    string `uri:"handle" json:"-" validate:"required,handle"`
	CommentID string `uri:"id" json:"-" validate:"required,max=64"`
	Status    string `json:"status" validate:"required,oneof=approved spam disapproved"`
	UserID    string `json:"-" validate:"required"`
}

type CommentStatusResponse struct {
	ID      string `json:"id"`
	EntryID string `json:"entry_id"`
	Status  string `json:"status"`
}

type EntryResponse struct {
	ID              string              `json:"id"`
	Anchor          string              `json:"anchor"`
	Title           string              `json:"title"`
	DisplayTitle    string              `json:"display_title"`
	Summary         string              `json:"summary,omitempty"`
	Content         string              `json:"content"`
	Permalink       string              `json:"permalink"`
	CommentsLink    string              `json:"comments_link"`
	Category        string              `json:"category,omitempty"`
	CategoryURL     string              `json:"category_url,omitempty"`
	Tags            []string            `json:"tags"`
	Locale          string              `json:"locale,omitempty"`
	RightToLeft     bool                `json:"right_to_left"`
	PubTime         *time.Time          `json:"pub_time,omitempty"`
	UpdateTime      time.Time           `json:"update_time"`
	CommentsAllowed bool                `json:"comments_allowed"`
	CommentCount    int                 `json:"comment_count"`
	Comments        []entry.CommentView `json:"comments,omitempty"`
}

// ToEntryResponse converts a view. A non-empty readMoreLink selects the
// listing form of the content; withComments adds approved comments.
func ToEntryResponse(v *entry.EntryView, readMoreLink string, withComments bool) *EntryResponse {
	if v == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:              v.ID(),
		Anchor:          v.Anchor(),
		Title:           v.Title(),
		DisplayTitle:    v.DisplayTitle(),
		Summary:         v.TransformedSummary(),
		Content:         v.DisplayContent(readMoreLink),
		Permalink:       v.Permalink(),
		CommentsLink:    v.CommentsLink(),
		Category:        v.CategoryName(),
		CategoryURL:     v.CategoryURL(),
		Tags:            v.Tags(),
		Locale:          v.Locale(),
		RightToLeft:     v.RightToLeft(),
		UpdateTime:      v.UpdateTime(),
		CommentsAllowed: v.CommentsStillAllowed(),
		CommentCount:    v.CommentCount(),
	}
	if pt := v.PubTime(); !pt.IsZero() {
		resp.PubTime = &pt
	}
	if withComments {
		resp.Comments = v.Comments(true, true)
	}
	return resp
}
