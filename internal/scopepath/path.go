// internal/scopepath/path.go
package scopepath

import "strings"

// Path is the ancestor chain of a scope, root first, the scope itself last.
type Path []string

// String serializes the Path into its canonical string representation.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Last returns the scope the path belongs to.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the name of the immediate enclosing scope, or "" for the
// root.
func (p Path) Parent() string {
	if len(p) < 2 {
		return ""
	}
	return p[len(p)-2]
}

// Append returns a new path extended by name. The receiver is not modified.
func (p Path) Append(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// CommonPrefixLen returns the length of the longest common prefix of a and b.
func CommonPrefixLen(a, b Path) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Uncommon splits a and b at their longest common prefix and returns the
// shared prefix and the two divergent suffixes.
//
// For `root.g1.g2.op1` and `root.g1.g3.g4.op2` it returns `root.g1`,
// `g2.op1` and `g3.g4.op2`.
func Uncommon(a, b Path) (common, aSuffix, bSuffix Path) {
	k := CommonPrefixLen(a, b)
	return a[:k:k], a[k:], b[k:]
}
