// Package dto holds the AtomPub service document model. It is independent of
// XML; the HTTP layer renders it in the APP 1.0 namespace.
package dto

type ServiceDocumentRequest struct {
	UserName string
	// AtomURL is the service root collections hang off. Empty uses the
	// configured server URL.
	AtomURL string
}

type ServiceDocument struct {
	Workspaces []Workspace `json:"workspaces"`
}

// Workspace represents one weblog the user may post to.
type Workspace struct {
	Title       string       `json:"title"`
	Collections []Collection `json:"collections"`
}

type Collection struct {
	Title      string       `json:"title"`
	Href       string       `json:"href"`
	Accepts    []string     `json:"accepts"`
	Categories []Categories `json:"categories,omitempty"`
}

// Categories is a fixed list under Scheme, or an open set when Fixed is false.
type Categories struct {
	Fixed      bool       `json:"fixed"`
	Scheme     string     `json:"scheme,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

type Category struct {
	Term  string `json:"term"`
	Label string `json:"label"`
}
