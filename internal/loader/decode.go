package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"mdcheck/internal/model"
)

const (
	keyKind = "kind"
	keyName = "name"
)

// document is one decoded YAML document describing a top-level object.
// Documents are cached and shared, so they are never modified.
type document map[string]any

func decodeDocuments(data []byte) ([]document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []document
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(doc) == 0 {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// buildObject turns a document into a fresh top-level node.
func buildObject(doc document) (*model.Node, error) {
	raw, ok := doc[keyKind].(string)
	if !ok {
		return nil, fmt.Errorf("missing %q", keyKind)
	}
	kind, err := model.ParseKind(raw)
	if err != nil {
		return nil, err
	}
	if !kind.IsTopLevel() {
		return nil, fmt.Errorf("kind %s cannot appear at the top level", kind)
	}
	return buildNode(kind, doc)
}

func buildNode(kind model.Kind, doc map[string]any) (*model.Node, error) {
	name := ""
	if v, ok := doc[keyName]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: name must be a string, got %T", kind, v)
		}
		name = s
	}
	if raw, ok := doc[keyKind]; ok {
		s, _ := raw.(string)
		if k, err := model.ParseKind(s); err != nil || k != kind {
			return nil, fmt.Errorf("%s %s: kind %v does not match the expected %s", kind, name, raw, kind)
		}
	}

	n := model.NewObject(kind, name)

	keys := make([]string, 0, len(doc))
	for k := range doc {
		if k != keyKind && k != keyName {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := doc[key]
		if v == nil {
			continue
		}
		f, vt, ok := model.LookupFeature(key)
		if !ok {
			return nil, fmt.Errorf("%s: unknown feature %q", n.FQN(), key)
		}

		switch vt {
		case model.ValueChildren:
			items, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("%s: feature %q: expected a list, got %T", n.FQN(), key, v)
			}
			for i, item := range items {
				child, err := buildChild(f, item)
				if err != nil {
					return nil, fmt.Errorf("%s: %s[%d]: %w", n.FQN(), key, i, err)
				}
				if err := n.AddChild(f, child); err != nil {
					return nil, fmt.Errorf("%s: %w", n.FQN(), err)
				}
			}
		case model.ValueChild:
			child, err := buildChild(f, v)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", n.FQN(), key, err)
			}
			if err := n.AddChild(f, child); err != nil {
				return nil, fmt.Errorf("%s: %w", n.FQN(), err)
			}
		default:
			if err := n.SetValue(f, v); err != nil {
				return nil, fmt.Errorf("%s: %w", n.FQN(), err)
			}
		}
	}
	return n, nil
}

func buildChild(f model.Feature, v any) (*model.Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
	kind, ok := f.ChildKind()
	if !ok {
		return nil, fmt.Errorf("feature %q does not hold objects", f)
	}
	return buildNode(kind, m)
}
