// SPDX-License-Identifier: MIT
package arraytree

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for [Build] & [BuildAll].
	//
	// Start from [DefConfig]; the zero value disables nested ids & flattens the output.
	Config struct {
		// Logger for build messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool

		// ID is the field name (or dotted path) holding a record's identifier.
		ID string
		// ParentID is the field name (or dotted path) holding a record's parent identifier.
		ParentID string

		// DataField wraps a record's data under this field; an empty value merges the record's
		// fields into the node.
		DataField string
		// ChildrenField holds a node's child list.
		ChildrenField string

		// ThrowIfOrphans fails the build on unresolved parents & unreachable (cyclic) nodes.
		ThrowIfOrphans bool

		// RootParentIDs are parent identifiers treated as "no parent".
		//
		// A nil value is replaced by the default set, an empty non-nil value disables it.
		RootParentIDs []any

		// NestedIDs interprets ID & ParentID as dot-separated paths.
		NestedIDs bool

		// Assign attaches children to the caller's records in place when DataField is empty.
		Assign bool

		// Transform is applied to each record before it is attached to its node.
		Transform Transform

		// PoolSize is the worker count for [BuildAll].
		PoolSize int
	}

	// Option defines the Config functional option type.
	Option func(*Config)
)

// Configuration defaults.
const (
	DefaultID            = "id"
	DefaultParentID      = "parentId"
	DefaultDataField     = "data"
	DefaultChildrenField = "children"
)

var fLogger logrus.FieldLogger = logrus.NewEntry(logrus.New())

// SetLogger configures the package's default logrus.FieldLogger.
func SetLogger(l logrus.FieldLogger) { fLogger = l }

// DefRootParentIDs obtains the default root parent identifiers.
func DefRootParentIDs() []any { return []any{""} }

// DefConfig obtains the package's default [Config].
func DefConfig() *Config {
	return &Config{
		Logger:        fLogger,
		ID:            DefaultID,
		ParentID:      DefaultParentID,
		DataField:     DefaultDataField,
		ChildrenField: DefaultChildrenField,
		RootParentIDs: DefRootParentIDs(),
		NestedIDs:     true,
		PoolSize:      runtime.NumCPU(),
	}
}

// NewConfig applies options over [DefConfig].
func NewConfig(options ...Option) *Config {
	c := DefConfig()
	for _, opt := range options {
		opt(c)
	}

	return c
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = fLogger
	}
	if c.ID == "" {
		c.ID = DefaultID
	}
	if c.ParentID == "" {
		c.ParentID = DefaultParentID
	}
	if c.ChildrenField == "" {
		c.ChildrenField = DefaultChildrenField
	}
	if c.RootParentIDs == nil {
		c.RootParentIDs = DefRootParentIDs()
	}
	if c.PoolSize < 1 {
		c.PoolSize = runtime.NumCPU()
	}
}

// WithConfig replaces the whole [Config].
func WithConfig(cfg *Config) Option { return func(c *Config) { *c = *cfg } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }

// WithID configures the identifier field.
func WithID(path string) Option { return func(c *Config) { c.ID = path } }

// WithParentID configures the parent identifier field.
func WithParentID(path string) Option { return func(c *Config) { c.ParentID = path } }

// WithDataField configures the field wrapping a record's data, "" flattens the output.
func WithDataField(name string) Option { return func(c *Config) { c.DataField = name } }

// Flatten merges record fields into their nodes.
func Flatten() Option { return WithDataField("") }

// WithChildrenField configures the field holding a node's children.
func WithChildrenField(name string) Option { return func(c *Config) { c.ChildrenField = name } }

// WithThrowIfOrphans configures orphan & cycle checking.
func WithThrowIfOrphans(check bool) Option { return func(c *Config) { c.ThrowIfOrphans = check } }

// WithRootParentIDs replaces the root parent identifier set.
func WithRootParentIDs(ids ...any) Option {
	return func(c *Config) { c.RootParentIDs = append([]any{}, ids...) }
}

// WithNestedIDs configures dotted path resolution for the id & parent fields.
func WithNestedIDs(nested bool) Option { return func(c *Config) { c.NestedIDs = nested } }

// WithAssign configures in-place mutation of records for flattened output.
func WithAssign(assign bool) Option { return func(c *Config) { c.Assign = assign } }

// WithTransform configures the record transform.
func WithTransform(t Transform) Option { return func(c *Config) { c.Transform = t } }

// WithPoolSize configures the [BuildAll] worker count.
func WithPoolSize(size int) Option { return func(c *Config) { c.PoolSize = size } }
