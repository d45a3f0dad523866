// SPDX-License-Identifier: MIT
package arraytree

import "golang.org/x/exp/slices"

type (
	// Item is one input record.
	Item map[string]any

	// TreeItem is one output node; its children are held under the configured children field as
	// a []TreeItem.
	TreeItem map[string]any

	// node is a lookup entry.
	//
	// A node exists before its record is seen when a child references it (a placeholder).
	node struct {
		// id contains the normalized identifier.
		id any

		// data contains the (transformed) record, valid when seen is set.
		data Item
		seen bool

		// parent contains a reference to the containing node, nil for roots & unplaced nodes.
		parent *node
		isRoot bool
		placed bool

		// children holds references to nodes placed under this one, in insertion order.
		children []*node

		// out contains the materialized TreeItem.
		out TreeItem
	}
)

// removeNode drops a node reference from a list, preserving order.
func removeNode(list []*node, n *node) []*node {
	if index := slices.Index(list, n); index > -1 {
		return slices.Delete(list, index, index+1)
	}

	return list
}
