package todo

import "fmt"

// DepTreeNode represents a node in a dependency tree.
type DepTreeNode struct {
	// Todo is the todo at this node.
	Todo *Todo

	// Children are the todos that this todo depends on.
	Children []*DepTreeNode
}

// Lookup finds a todo by ID.
type Lookup func(id string) (*Todo, bool)

// PendingDependencies returns the dependencies of t that exist and are not
// completed. Dangling IDs are skipped.
func PendingDependencies(t *Todo, lookup Lookup) []*Todo {
	var pending []*Todo
	for _, id := range t.Dependencies {
		dep, ok := lookup(id)
		if !ok || dep.Completed {
			continue
		}
		pending = append(pending, dep)
	}
	return pending
}

// IsBlocked reports whether t has any pending dependency.
func IsBlocked(t *Todo, lookup Lookup) bool {
	return len(PendingDependencies(t, lookup)) > 0
}

// CheckDependencies validates a proposed dependency list for the todo with
// the given id: no self reference, every ID must exist, and the new edges
// must not close a cycle.
func CheckDependencies(id string, deps []string, lookup Lookup) error {
	return CheckDependencyChange(id, nil, deps, lookup)
}

// CheckDependencyChange validates replacing previous with deps. IDs already
// in previous may dangle; newly added IDs must exist.
func CheckDependencyChange(id string, previous, deps []string, lookup Lookup) error {
	if err := ValidateDependencies(id, deps); err != nil {
		return err
	}
	kept := make(map[string]bool, len(previous))
	for _, dep := range previous {
		kept[dep] = true
	}
	for _, dep := range deps {
		if kept[dep] {
			continue
		}
		if _, ok := lookup(dep); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownDependency, dep)
		}
	}
	for _, dep := range deps {
		if reaches(dep, id, lookup, map[string]bool{}) {
			return fmt.Errorf("%w: %s -> %s -> %s", ErrDependencyCycle, id, dep, id)
		}
	}
	return nil
}

// reaches reports whether target is reachable from start along existing
// dependency edges.
func reaches(start, target string, lookup Lookup, visited map[string]bool) bool {
	if start == target {
		return true
	}
	if visited[start] {
		return false
	}
	visited[start] = true
	t, ok := lookup(start)
	if !ok {
		return false
	}
	for _, next := range t.Dependencies {
		if reaches(next, target, lookup, visited) {
			return true
		}
	}
	return false
}

// BuildDepTree returns the dependency tree rooted at root. Dangling IDs are
// skipped and a todo already on the current path becomes a leaf.
func BuildDepTree(root *Todo, lookup Lookup) *DepTreeNode {
	return buildDepTree(root, lookup, make(map[string]bool))
}

func buildDepTree(t *Todo, lookup Lookup, path map[string]bool) *DepTreeNode {
	if path[t.ID] {
		// Avoid cycles
		return &DepTreeNode{Todo: t}
	}
	path[t.ID] = true
	defer delete(path, t.ID)

	node := &DepTreeNode{Todo: t}
	for _, id := range t.Dependencies {
		child, ok := lookup(id)
		if !ok {
			continue
		}
		node.Children = append(node.Children, buildDepTree(child, lookup, path))
	}
	return node
}
