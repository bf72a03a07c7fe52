package weblog

import (
	"fmt"
	"strings"
)

type Category struct {
	id          string
	weblogID    string
	name        string
	description string
	position    int
}

func NewCategory(id, weblogID, name, description string, position int) (*Category, error) {
	if id == "" {
		return nil, fmt.Errorf("category ID is required")
	}
	if weblogID == "" {
		return nil, fmt.Errorf("weblog ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if len(name) > 255 {
		return nil, fmt.Errorf("category name exceeds maximum length of 255 characters")
	}
	if position < 0 {
		return nil, fmt.Errorf("category position cannot be negative")
	}
	return &Category{id: id, weblogID: weblogID, name: name, description: description, position: position}, nil
}

func (c *Category) ID() string          { return c.id }
func (c *Category) WeblogID() string    { return c.weblogID }
func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }
func (c *Category) Position() int       { return c.position }
