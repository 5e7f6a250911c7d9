// internal/scopepath/doc.go

/*
Package scopepath provides the ancestor path of a scope: the ordered list of
enclosing scope names, root first and the scope itself last.

The canonical string format is a dot-separated sequence of names,
e.g., `root.loop-a.condition-b.train`.

Beyond formatting and name validation, the package answers the one structural
question the resolver keeps asking: where do the paths of two scopes
diverge.
*/
package scopepath
