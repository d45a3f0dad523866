// SPDX-License-Identifier: MIT

// Package arraytree converts flat lists of parent-referencing records into forests.
package arraytree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// plan is a resolved, read-only [Config] for a single build.
	plan struct {
		cfg       Config
		resolver  FieldResolver
		shape     shaper
		sentinels map[any]struct{}
	}

	// builder holds the transient state of a single build.
	builder struct {
		*plan
		logger logrus.FieldLogger

		// nodes is the lookup map; order lists its entries by creation.
		nodes map[any]*node
		order []*node

		roots []*node

		// orphans is nil unless orphan checking is enabled.
		orphans *orphanSet
	}

	// orphanSet tracks referenced parents whose records have not been seen, in first-seen order.
	orphanSet struct {
		pending map[any]struct{}
		order   []any
	}

	// OrphanError lists parent identifiers referenced by records but never seen as a record's
	// own identifier.
	OrphanError struct {
		ParentIDs []any
	}
)

// Tree building errors.
var (
	ErrBuildTree = errors.New("failed to build tree")

	ErrRootSentinelConflict = errors.New("item id is a root parent id")
	ErrOrphanReference      = errors.New("items reference missing parent ids")
	ErrCircularRelationship = errors.New("items have a circular parent/child relationship")
	ErrInvalidID            = errors.New("invalid identifier")

	ErrPanicked = errors.New("recovery from panic")
)

// dumper bounds debug dumps; materialized nodes of a cycle reference themselves.
var dumper = spew.ConfigState{Indent: " ", MaxDepth: 4, DisablePointerAddresses: true}

// Error implements the error interface.
func (e *OrphanError) Error() string {
	ids := make([]string, len(e.ParentIDs))
	for index, id := range e.ParentIDs {
		ids[index] = formatID(id)
	}

	return fmt.Sprintf("%v: [%s]", ErrOrphanReference, strings.Join(ids, ", "))
}

// Unwrap exposes ErrOrphanReference to errors.Is.
func (e *OrphanError) Unwrap() error { return ErrOrphanReference }

// Build converts a flat list of records into a forest in O(n).
//
// Records are visited once, in order. A record whose parent is nil, absent or a root parent
// id becomes a root; any other record is appended to its parent's children. Records whose
// parent never appears are dropped from the forest unless orphan checking is enabled.
func Build(items []Item, options ...Option) (forest []TreeItem, err error) {
	return NewConfig(options...).Build(items)
}

// Build performs [Build] using the Config.
//
// The Config is copied; concurrent builds may share it.
func (c *Config) Build(items []Item) (forest []TreeItem, err error) {
	var b *builder

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			// Skip expensive operation if not debug.
			if b != nil && b.cfg.Debug {
				b.logger.Debugf("lookup state: %s", dumper.Sdump(b.order))
			}

			forest = nil
			err = fmt.Errorf("%w: %w", ErrBuildTree, err)
		}
	}()

	p, err := c.plan()
	if err != nil {
		return
	}
	b = newBuilder(p, len(items))

	for index, item := range items {
		if err = b.add(item); err != nil {
			err = fmt.Errorf("item %d: %w", index, err)
			return
		}
	}

	return b.finish()
}

func (c *Config) plan() (p *plan, err error) {
	p = &plan{cfg: *c}
	p.cfg.Validate()

	if p.cfg.NestedIDs {
		p.resolver = DottedPath{}
	} else {
		p.resolver = FlatKey{}
	}
	p.shape = newShaper(p.cfg.DataField, p.cfg.Assign)

	p.sentinels = make(map[any]struct{}, len(p.cfg.RootParentIDs))
	for _, id := range p.cfg.RootParentIDs {
		var key any
		if key, err = normalizeID(id); err != nil {
			return nil, fmt.Errorf("root parent id: %w", err)
		}
		p.sentinels[key] = struct{}{}
	}

	return
}

func newBuilder(p *plan, size int) *builder {
	b := &builder{
		plan:   p,
		logger: p.cfg.Logger,
		nodes:  make(map[any]*node, size),
		order:  make([]*node, 0, size),
	}
	if p.cfg.ThrowIfOrphans {
		b.orphans = &orphanSet{pending: make(map[any]struct{})}
	}

	return b
}

// add visits a single record.
func (b *builder) add(item Item) (err error) {
	rawID, _ := b.resolver.Resolve(item, b.cfg.ID)
	rawParentID, _ := b.resolver.Resolve(item, b.cfg.ParentID)

	id, err := normalizeID(rawID)
	if err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	parentID, err := normalizeID(rawParentID)
	if err != nil {
		return fmt.Errorf("parent id: %w", err)
	}

	if b.isRoot(id) {
		return fmt.Errorf("%w (item id: %s, root parent ids: %s)", ErrRootSentinelConflict, formatID(rawID), b.sentinelList())
	}

	n, _ := b.entry(id)
	if b.orphans != nil {
		b.orphans.remove(id)
	}

	data := item
	if b.cfg.Transform != nil {
		data = b.cfg.Transform.apply(item)
	}
	n.data, n.seen = data, true

	if parentID == nil || b.isRoot(parentID) {
		if b.cfg.Debug {
			b.logger.Debugf("root (%v)", id)
		}
		b.placeRoot(n)

		return
	}

	parent, created := b.entry(parentID)
	if created && b.orphans != nil {
		b.orphans.add(parentID)
	}
	if b.cfg.Debug {
		b.logger.Debugf("(%v) child of (%v)", id, parentID)
	}
	b.placeUnder(parent, n)

	return
}

// entry obtains the lookup entry for an id, creating a placeholder when missing.
func (b *builder) entry(id any) (n *node, created bool) {
	if n = b.nodes[id]; n != nil {
		return
	}

	n = &node{id: id}
	b.nodes[id] = n
	b.order = append(b.order, n)

	return n, true
}

func (b *builder) isRoot(id any) (ok bool) {
	_, ok = b.sentinels[id]
	return
}

func (b *builder) sentinelList() string {
	ids := make([]string, len(b.cfg.RootParentIDs))
	for index, id := range b.cfg.RootParentIDs {
		ids[index] = formatID(id)
	}

	return strings.Join(ids, ", ")
}

// placeRoot appends a node to the roots; a node already there keeps its position.
func (b *builder) placeRoot(n *node) {
	if n.placed && n.isRoot {
		return
	}

	b.detach(n)
	n.placed, n.isRoot, n.parent = true, true, nil
	b.roots = append(b.roots, n)
}

// placeUnder appends a node to a parent's children; a node already there keeps its position.
func (b *builder) placeUnder(parent, n *node) {
	if n.placed && n.parent == parent {
		return
	}

	b.detach(n)
	n.placed, n.isRoot, n.parent = true, false, parent
	parent.children = append(parent.children, n)
}

// detach removes a node from its current position; used when a duplicate id relocates it.
func (b *builder) detach(n *node) {
	if !n.placed {
		return
	}

	if b.cfg.Debug {
		b.logger.Debugf("relocating duplicate (%v)", n.id)
	}

	if n.isRoot {
		b.roots = removeNode(b.roots, n)
	} else {
		n.parent.children = removeNode(n.parent.children, n)
	}
	n.placed, n.isRoot, n.parent = false, false, nil
}

// finish validates the lookup state & materializes the forest.
func (b *builder) finish() (forest []TreeItem, err error) {
	if b.orphans != nil {
		if pending := b.orphans.list(); len(pending) > 0 {
			return nil, &OrphanError{ParentIDs: pending}
		}
	}

	// Shape all seen nodes first; children may precede their parents in the lookup order.
	for _, n := range b.order {
		if n.seen {
			n.out = b.shape.shape(n.data)
		}
	}
	for _, n := range b.order {
		if !n.seen {
			continue
		}

		children := make([]TreeItem, len(n.children))
		for index, child := range n.children {
			children[index] = child.out
		}
		n.out[b.cfg.ChildrenField] = children
	}

	forest = make([]TreeItem, len(b.roots))
	for index, n := range b.roots {
		forest[index] = n.out
	}

	if b.orphans != nil {
		if count, total := CountNodes(forest, b.cfg.ChildrenField), len(b.nodes); count < total {
			return nil, fmt.Errorf("%w (%d of %d nodes reachable)", ErrCircularRelationship, count, total)
		}
	}

	if b.cfg.Debug {
		b.logger.WithFields(logrus.Fields{
			"items": len(b.nodes),
			"roots": len(forest),
		}).Debug("built forest")
	}

	return
}

func (o *orphanSet) add(id any) {
	if _, ok := o.pending[id]; ok {
		return
	}

	o.pending[id] = struct{}{}
	o.order = append(o.order, id)
}

func (o *orphanSet) remove(id any) { delete(o.pending, id) }

// list returns the pending ids in first-seen order.
func (o *orphanSet) list() (ids []any) {
	for _, id := range o.order {
		if _, ok := o.pending[id]; ok {
			ids = append(ids, id)
		}
	}

	return
}
