package projection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Stock maps a store name to a positive count.
type Stock map[string]int64

// Node is one non-empty group of the projection.
type Node struct {
	Name      string           `json:"-"`
	Products  map[string]Stock `json:"products"`
	SubGroups Groups           `json:"subGroups"`
}

// Groups is a name-ordered list of sibling nodes. It encodes as a JSON object
// keyed by group name, preserving the order.
type Groups []*Node

// MarshalJSON writes the groups as an ordered object.
func (g Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object written by MarshalJSON, keeping key order.
func (g *Groups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*g = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("groups: expected object, got %v", tok)
	}

	out := Groups{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("groups: expected name, got %v", tok)
		}
		n := &Node{}
		if err := dec.Decode(n); err != nil {
			return fmt.Errorf("groups: %s: %w", name, err)
		}
		n.Name = name
		if n.Products == nil {
			n.Products = map[string]Stock{}
		}
		if n.SubGroups == nil {
			n.SubGroups = Groups{}
		}
		out = append(out, n)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = out
	return nil
}

// Projection is an immutable snapshot of available inventory.
type Projection struct {
	Groups  Groups
	BuiltAt time.Time

	byName map[string][]*Node
}

// New indexes groups into a projection. The groups must not be modified afterwards.
func New(groups Groups, builtAt time.Time) *Projection {
	if groups == nil {
		groups = Groups{}
	}
	p := &Projection{Groups: groups, BuiltAt: builtAt, byName: make(map[string][]*Node)}
	p.index(groups)
	return p
}

// Empty returns a projection without groups.
func Empty() *Projection {
	return New(nil, time.Time{})
}

func (p *Projection) index(groups Groups) {
	for _, n := range groups {
		p.byName[n.Name] = append(p.byName[n.Name], n)
		p.index(n.SubGroups)
	}
}

// Find returns every node with the given group name, in tree order.
func (p *Projection) Find(name string) []*Node {
	return p.byName[name]
}

// Size counts the nodes of the tree.
func (p *Projection) Size() int {
	n := 0
	for _, nodes := range p.byName {
		n += len(nodes)
	}
	return n
}

// IsEmpty reports whether no group has stock.
func (p *Projection) IsEmpty() bool {
	return len(p.Groups) == 0
}

type snapshot struct {
	BuiltAt time.Time `json:"builtAt"`
	Groups  Groups    `json:"groups"`
}

// MarshalJSON encodes the projection with its build time.
func (p *Projection) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{BuiltAt: p.BuiltAt, Groups: p.Groups})
}

// UnmarshalJSON decodes a projection and rebuilds its index.
func (p *Projection) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = *New(s.Groups, s.BuiltAt)
	return nil
}
