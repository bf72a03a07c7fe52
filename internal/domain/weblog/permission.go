package weblog

import (
	"fmt"
	"sort"
	"strings"
)

type Action string

const (
	ActionEditDraft Action = "edit_draft"
	ActionPost      Action = "post"
	ActionAdmin     Action = "admin"
)

// implied lists what each action grants beyond itself.
var implied = map[Action][]Action{
	ActionAdmin:     {ActionPost, ActionEditDraft},
	ActionPost:      {ActionEditDraft},
	ActionEditDraft: {},
}

func (a Action) IsValid() bool {
	_, ok := implied[a]
	return ok
}

// Permission grants a user a set of actions on one weblog.
type Permission struct {
	userID   string
	weblogID string
	actions  map[Action]bool
}

func NewPermission(userID, weblogID string, actions ...Action) (*Permission, error) {
	if userID == "" || weblogID == "" {
		return nil, fmt.Errorf("user ID and weblog ID are required")
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("at least one action is required")
	}
	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		if !a.IsValid() {
			return nil, fmt.Errorf("invalid weblog action %q", a)
		}
		set[a] = true
	}
	return &Permission{userID: userID, weblogID: weblogID, actions: set}, nil
}

// ParseActions reads the comma separated form used in storage.
func ParseActions(s string) []Action {
	var out []Action
	for _, part := range strings.Split(s, ",") {
		if a := Action(strings.TrimSpace(part)); a.IsValid() {
			out = append(out, a)
		}
	}
	return out
}

func (p *Permission) UserID() string   { return p.userID }
func (p *Permission) WeblogID() string { return p.weblogID }

// Has reports whether the permission grants action directly or by implication.
func (p *Permission) Has(action Action) bool {
	for granted := range p.actions {
		if granted == action {
			return true
		}
		for _, sub := range implied[granted] {
			if sub == action {
				return true
			}
		}
	}
	return false
}

// ActionsString renders the granted actions sorted and comma separated.
func (p *Permission) ActionsString() string {
	names := make([]string, 0, len(p.actions))
	for a := range p.actions {
		names = append(names, string(a))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
