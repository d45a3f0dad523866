// SPDX-License-Identifier: MIT
package arraytree

import (
	"context"
)

type (
	// Visit is a node yielded by [Walk].
	Visit struct {
		Node TreeItem

		// Depth is 0 for roots.
		Depth int
		// NewLevel marks the first node of a depth.
		NewLevel bool
	}

	// LevelList groups a forest's nodes by depth.
	LevelList [][]TreeItem
)

const traverseBufferSize = 10

// Walk performs breadth-first traversal on a forest, pushing its nodes to visitChan.
//
// visitChan is closed on return. A context.Context is used to terminate the walk operation.
func Walk(ctx context.Context, forest []TreeItem, childrenField string, visitChan chan<- Visit) {
	defer close(visitChan)

	// Level order traversal.
	queue := append([]TreeItem{}, forest...)

	var front TreeItem
	for depth := 0; len(queue) > 0; depth++ {
		newLevel := true
		for queueLen := len(queue); queueLen > 0; queueLen-- {
			front, queue = queue[0], queue[1:]

			select {
			case <-ctx.Done():
				// Received context cancellation.
				return
			case visitChan <- Visit{Node: front, Depth: depth, NewLevel: newLevel}:
			}
			newLevel = false

			queue = append(queue, childTreeItems(front, childrenField)...)
		}
	}
}

// Levels lists a forest's nodes by depth.
func Levels(ctx context.Context, forest []TreeItem, childrenField string) (levels LevelList, err error) {
	visitChan := make(chan Visit, traverseBufferSize)
	go Walk(ctx, forest, childrenField, visitChan)

	levels = make(LevelList, 0)
	for visit := range visitChan {
		if visit.NewLevel {
			levels = append(levels, []TreeItem{})
		}
		last := len(levels) - 1
		levels[last] = append(levels[last], visit.Node)
	}

	// The walk may have stopped early.
	if err = ctx.Err(); err != nil {
		levels = nil
	}

	return
}

// Leaves lists the nodes of a forest lacking children, in level order.
func Leaves(ctx context.Context, forest []TreeItem, childrenField string) (leaves []TreeItem, err error) {
	visitChan := make(chan Visit, traverseBufferSize)
	go Walk(ctx, forest, childrenField, visitChan)

	leaves = make([]TreeItem, 0)
	for visit := range visitChan {
		if len(childTreeItems(visit.Node, childrenField)) < 1 {
			leaves = append(leaves, visit.Node)
		}
	}

	if err = ctx.Err(); err != nil {
		leaves = nil
	}

	return
}

// childTreeItems reads a node's children as TreeItems, skipping entries that are not maps.
func childTreeItems(n TreeItem, childrenField string) (children []TreeItem) {
	switch list := n[childrenField].(type) {
	case []TreeItem:
		return list
	case []any:
		children = make([]TreeItem, 0, len(list))
		for _, child := range list {
			switch c := child.(type) {
			case TreeItem:
				children = append(children, c)
			case Item:
				children = append(children, TreeItem(c))
			case map[string]any:
				children = append(children, c)
			}
		}
	}

	return
}
