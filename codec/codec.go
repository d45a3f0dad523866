// SPDX-License-Identifier: MIT

// Package codec reads records from & writes forests to YAML or JSON documents.
package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/arraytree"
)

const indent = 2

// Codec errors.
var (
	ErrDecodeItems   = errors.New("failed to decode items")
	ErrEncodeForest  = errors.New("failed to encode forest")
	ErrExcessiveDocs = errors.New("the source has more than one document")
)

// DecodeItems reads a sequence of mappings, in YAML or JSON, as records.
//
// Nested mappings are decoded as map[string]any. An empty source yields no records.
func DecodeItems(r io.Reader) (items []arraytree.Item, err error) {
	dec := yaml.NewDecoder(r)

	if err = dec.Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return []arraytree.Item{}, nil
		}

		return nil, fmt.Errorf("%w: %v", ErrDecodeItems, err)
	}

	var extra any
	if err = dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecodeItems, ErrExcessiveDocs)
	}
	err = nil

	if items == nil {
		items = []arraytree.Item{}
	}

	return
}

// EncodeForest writes a forest as YAML.
func EncodeForest(w io.Writer, forest []arraytree.TreeItem) (err error) {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)

	defer func() {
		if cErr := enc.Close(); err == nil && cErr != nil {
			err = fmt.Errorf("%w: %v", ErrEncodeForest, cErr)
		}
	}()

	if forest == nil {
		forest = []arraytree.TreeItem{}
	}
	if err = enc.Encode(forest); err != nil {
		err = fmt.Errorf("%w: %v", ErrEncodeForest, err)
	}

	return
}
