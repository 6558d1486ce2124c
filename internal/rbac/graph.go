// Package rbac holds the role → subordinate-role graph used to decide which
// users a role holder may see.
package rbac

import (
	"sort"

	"github.com/google/uuid"
)

// Set is a set of role or user ids.
type Set map[uuid.UUID]struct{}

// NewSet builds a set from ids; duplicates collapse.
func NewSet(ids ...uuid.UUID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Add(id uuid.UUID) { s[id] = struct{}{} }

func (s Set) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the members in a stable order.
func (s Set) Slice() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Edge is one declared "role → subordinate role" relation.
type Edge struct {
	RoleID        uuid.UUID
	SubordinateID uuid.UUID
}

// Graph maps a role id to the set of its declared subordinate role ids. The
// graph is directed and may contain cycles.
type Graph map[uuid.UUID]Set

// NewGraph builds a graph from its edge list.
func NewGraph(edges []Edge) Graph {
	g := Graph{}
	for _, e := range edges {
		g.Link(e.RoleID, e.SubordinateID)
	}
	return g
}

// Link declares sub as a subordinate of role.
func (g Graph) Link(role, sub uuid.UUID) {
	subs, ok := g[role]
	if !ok {
		subs = Set{}
		g[role] = subs
	}
	subs.Add(sub)
}

// Expand returns the union of the declared subordinates of every role in
// roles. Only one level is followed: a subordinate's own subordinates are not
// included unless some role in roles declares them directly.
func (g Graph) Expand(roles []uuid.UUID) Set {
	out := Set{}
	for _, r := range roles {
		for sub := range g[r] {
			out.Add(sub)
		}
	}
	return out
}

// Closure returns every role reachable from roles through one or more
// subordinate edges. Starting roles appear only if a cycle leads back to them.
func (g Graph) Closure(roles []uuid.UUID) Set {
	out := Set{}
	stack := make([]uuid.UUID, 0, len(roles))
	for _, r := range roles {
		stack = append(stack, r)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for sub := range g[cur] {
			if out.Has(sub) {
				continue
			}
			out.Add(sub)
			stack = append(stack, sub)
		}
	}
	return out
}

// Expansion selects between Expand and Closure.
type Expansion string

const (
	SingleLevel Expansion = "single"
	Transitive  Expansion = "transitive"
)

// ParseExpansion defaults to SingleLevel for unknown values.
func ParseExpansion(s string) Expansion {
	if Expansion(s) == Transitive {
		return Transitive
	}
	return SingleLevel
}

// Subordinates resolves the subordinate role set for roles using mode.
func (g Graph) Subordinates(roles []uuid.UUID, mode Expansion) Set {
	if mode == Transitive {
		return g.Closure(roles)
	}
	return g.Expand(roles)
}
