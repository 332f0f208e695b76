package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single sidebar element: panel, label or button. Class and ID
// select its stylesheet rules; Bounds is set by the sidebar layout.
type Node struct {
	Class  string // space separated, e.g. "button primary"
	ID     string
	Bounds rl.Rectangle
	Text   string
	// Disabled buttons draw with the :disabled rules and ignore clicks.
	Disabled bool
}

// NewNode creates a node with optional class, id and text.
func NewNode(class, id, text string) *Node {
	return &Node{Class: class, ID: id, Text: text}
}
