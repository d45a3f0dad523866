// SPDX-License-Identifier: MIT
package arraytree

type (
	// shaper produces the node holding a record's data; children are attached afterwards.
	shaper interface {
		shape(data Item) TreeItem
	}

	// wrapShape nests the data under a field.
	wrapShape struct{ dataField string }

	// mergeShape copies the data's fields into a fresh node.
	mergeShape struct{}

	// assignShape uses the record itself as the node.
	assignShape struct{}
)

func newShaper(dataField string, assign bool) shaper {
	switch {
	case dataField != "":
		return wrapShape{dataField: dataField}
	case assign:
		return assignShape{}
	default:
		return mergeShape{}
	}
}

func (w wrapShape) shape(data Item) TreeItem { return TreeItem{w.dataField: data} }

func (mergeShape) shape(data Item) TreeItem {
	out := make(TreeItem, len(data)+1)
	for key, value := range data {
		out[key] = value
	}

	return out
}

func (assignShape) shape(data Item) TreeItem {
	if data == nil {
		return TreeItem{}
	}

	return TreeItem(data)
}
