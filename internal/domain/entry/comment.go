package entry

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/rollerweb/roller/internal/domain/entry/valueobjects"
)

type Comment struct {
	id         string
	entryID    string
	name       string
	email      string
	url        string
	content    string
	remoteHost string
	status     vo.CommentStatus
	postTime   time.Time
}

// NewComment creates a comment awaiting moderation.
func NewComment(id, entryID, name, email, url, content, remoteHost string) (*Comment, error) {
	if id == "" {
		return nil, fmt.Errorf("comment ID is required")
	}
	if entryID == "" {
		return nil, fmt.Errorf("entry ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > 10000 {
		return nil, fmt.Errorf("content exceeds maximum length of 10000 characters")
	}
	return &Comment{
		id:         id,
		entryID:    entryID,
		name:       name,
		email:      email,
		url:        url,
		content:    content,
		remoteHost: remoteHost,
		status:     vo.CommentStatusPending,
		postTime:   time.Now().UTC(),
	}, nil
}

func ReconstructComment(id, entryID, name, email, url, content, remoteHost string, status vo.CommentStatus, postTime time.Time) (*Comment, error) {
	if id == "" {
		return nil, fmt.Errorf("comment ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid comment status %q", status)
	}
	return &Comment{
		id:         id,
		entryID:    entryID,
		name:       name,
		email:      email,
		url:        url,
		content:    content,
		remoteHost: remoteHost,
		status:     status,
		postTime:   postTime,
	}, nil
}

func (c *Comment) ID() string               { return c.id }
func (c *Comment) EntryID() string          { return c.entryID }
func (c *Comment) Name() string             { return c.name }
func (c *Comment) Email() string            { return c.email }
func (c *Comment) URL() string              { return c.url }
func (c *Comment) Content() string          { return c.content }
func (c *Comment) RemoteHost() string       { return c.remoteHost }
func (c *Comment) Status() vo.CommentStatus { return c.status }
func (c *Comment) PostTime() time.Time      { return c.postTime }

func (c *Comment) Approve()    { c.status = vo.CommentStatusApproved }
func (c *Comment) MarkSpam()   { c.status = vo.CommentStatusSpam }
func (c *Comment) Disapprove() { c.status = vo.CommentStatusDisapproved }

// Visible applies the listing filters: approvedOnly keeps only approved
// comments, otherwise ignoreSpam drops spam.
func (c *Comment) Visible(ignoreSpam, approvedOnly bool) bool {
	if approvedOnly {
		return c.status == vo.CommentStatusApproved
	}
	if ignoreSpam {
		return c.status != vo.CommentStatusSpam
	}
	return true
}
