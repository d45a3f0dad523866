// SPDX-License-Identifier: MIT
package arraytree

// CountNodes returns the number of nodes in a forest, children included.
//
// Children are read from childrenField as a []TreeItem, []Item, []map[string]any or []any, so a
// decoded document counts the same as a built forest. Traversal uses an explicit stack.
func CountNodes(forest []TreeItem, childrenField string) (count int) {
	stack := make([]any, 0, len(forest))
	for index := range forest {
		stack = append(stack, forest[index])
	}

	var top any
	for len(stack) > 0 {
		top, stack = stack[len(stack)-1], stack[:len(stack)-1]
		count++
		stack = appendChildren(stack, top, childrenField)
	}

	return
}

// appendChildren pushes a node's children onto the stack.
func appendChildren(stack []any, n any, childrenField string) []any {
	value, ok := field(n, childrenField)
	if !ok {
		return stack
	}

	switch children := value.(type) {
	case []TreeItem:
		for index := range children {
			stack = append(stack, children[index])
		}
	case []Item:
		for index := range children {
			stack = append(stack, children[index])
		}
	case []map[string]any:
		for index := range children {
			stack = append(stack, children[index])
		}
	case []any:
		stack = append(stack, children...)
	}

	return stack
}
