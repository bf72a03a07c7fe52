package pager

import "encoding/json"

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value   T
	present bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Present() bool {
	return o.present
}

// Value returns the held value, or the zero value when absent.
func (o Optional[T]) Value() T {
	return o.value
}

func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// Link is an optional URL.
type Link = Optional[string]

// Label is an optional localized caption.
type Label = Optional[string]

// NavigationLink pairs a URL with its caption. Both are present or both absent.
type NavigationLink struct {
	URL   Link  `json:"url"`
	Label Label `json:"label"`
}

func newNavigationLink(url Link, label Label) NavigationLink {
	if !url.Present() || !label.Present() {
		return NavigationLink{}
	}
	return NavigationLink{URL: url, Label: label}
}

func (n NavigationLink) Present() bool {
	return n.URL.Present()
}
