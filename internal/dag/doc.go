// Package dag holds a small directed graph used to validate the ordering
// edges of one dag body. Nodes are the names of sibling scopes; an edge from
// A to B means B runs after A.
//
// The resolver builds one Graph per parent scope and rejects the pipeline if
// any of them contains a cycle, since such a body can never be scheduled.
package dag
