package media

import (
	"context"
	"fmt"
	"strings"
)

// Directory is a named folder of uploaded files belonging to a weblog.
type Directory struct {
	id          string
	weblogID    string
	name        string
	description string
}

func NewDirectory(id, weblogID, name, description string) (*Directory, error) {
	if id == "" || weblogID == "" {
		return nil, fmt.Errorf("directory ID and weblog ID are required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("directory name is required")
	}
	if strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("directory name cannot contain path separators")
	}
	return &Directory{id: id, weblogID: weblogID, name: name, description: description}, nil
}

func (d *Directory) ID() string          { return d.id }
func (d *Directory) WeblogID() string    { return d.weblogID }
func (d *Directory) Name() string        { return d.name }
func (d *Directory) Description() string { return d.description }

type Repository interface {
	Create(ctx context.Context, d *Directory) error
	// ListByWeblog returns directories ordered by name.
	ListByWeblog(ctx context.Context, weblogID string) ([]*Directory, error)
}
