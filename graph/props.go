// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package graph

// VertexMap attaches a value to every vertex of a graph.
type VertexMap[T any] struct {
	values []T
}

// NewVertexMap returns a map over the vertices of g with every value set to
// init.
func NewVertexMap[T any](g *Graph, init T) VertexMap[T] {
	values := make([]T, g.NumVertices())
	for i := range values {
		values[i] = init
	}
	return VertexMap[T]{values: values}
}

func (m VertexMap[T]) Get(v int) T {
	return m.values[v]
}

func (m VertexMap[T]) Set(v int, x T) {
	m.values[v] = x
}

func (m VertexMap[T]) Len() int {
	return len(m.values)
}

// EdgeMap attaches a value to undirected edges; u-v and v-u are the same key.
type EdgeMap[T any] struct {
	values map[Edge]T
}

func NewEdgeMap[T any]() EdgeMap[T] {
	return EdgeMap[T]{values: make(map[Edge]T)}
}

func (m EdgeMap[T]) Get(u, v int) (T, bool) {
	x, ok := m.values[NewEdge(u, v)]
	return x, ok
}

func (m EdgeMap[T]) Set(u, v int, x T) {
	m.values[NewEdge(u, v)] = x
}

func (m EdgeMap[T]) Len() int {
	return len(m.values)
}
