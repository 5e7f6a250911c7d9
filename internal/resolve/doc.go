// Package resolve analyses a scope tree before it is emitted as IR.
//
// Resolution runs in fixed stages, each returning an immutable value that the
// next stage takes as an argument:
//
//  1. BuildIndex records the ancestor path of every task, group and alias.
//  2. Discover threads the operands of enclosing conditions down to every
//     nested task and alias, and finds every loop group, in a single walk.
//  3. UnifyTypes settles one declared type per parameter.
//  4. ResolveIO computes, for every scope, the parameters it must receive from
//     outside and the parameters it must expose to the outside.
//  5. ResolveDependencies derives ordering edges between siblings.
//
// Only the first two stages walk the tree; the rest work from the index.
//
// Resolve runs all of them in order.
package resolve
