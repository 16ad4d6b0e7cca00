package main

import (
	"fmt"
	"io"

	"github.com/amonks/tasknest/todo"
)

// printDepTree draws node and its dependencies with box-drawing branches.
func printDepTree(w io.Writer, node *todo.DepTreeNode, highlight func(string) string) {
	printDepTreeNode(w, node, "", true, true, highlight)
}

func printDepTreeNode(w io.Writer, node *todo.DepTreeNode, prefix string, root, last bool, highlight func(string) string) {
	if node == nil || node.Todo == nil {
		return
	}
	line := fmt.Sprintf("%s %s %s", completionIcon(node.Todo.Completed), highlight(node.Todo.ID), node.Todo.Title)
	childPrefix := prefix
	switch {
	case root:
		fmt.Fprintln(w, line)
	case last:
		fmt.Fprintf(w, "%s└── %s\n", prefix, line)
		childPrefix = prefix + "    "
	default:
		fmt.Fprintf(w, "%s├── %s\n", prefix, line)
		childPrefix = prefix + "│   "
	}
	for i, child := range node.Children {
		printDepTreeNode(w, child, childPrefix, false, i == len(node.Children)-1, highlight)
	}
}
