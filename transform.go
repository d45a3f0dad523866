// SPDX-License-Identifier: MIT
package arraytree

type (
	// Transform derives the data attached to a node from its record.
	//
	// Implemented by [RetainFields] & [MapFunc].
	Transform interface {
		apply(item Item) Item
	}

	// RetainFields keeps the listed top-level fields, dropping the rest.
	RetainFields []string

	// MapFunc maps a record to the data attached to its node.
	MapFunc func(Item) Item
)

func (r RetainFields) apply(item Item) Item {
	data := make(Item, len(r))
	for _, key := range r {
		if value, ok := item[key]; ok {
			data[key] = value
		}
	}

	return data
}

func (f MapFunc) apply(item Item) Item {
	if f == nil {
		return item
	}

	return f(item)
}
