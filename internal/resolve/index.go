package resolve

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/specialistvlad/pipelineir/internal/scopepath"
)

// Index maps every scope of the tree to its ancestor path.
//
// Tasks and groups live in separate path maps. Aliases get a terminal entry
// in the group map but are not descended into, so the subtree of their
// target is indexed exactly once.
type Index struct {
	root       *model.Group
	taskPaths  map[string]scopepath.Path
	groupPaths map[string]scopepath.Path

	tasks   map[string]*model.Task
	groups  map[string]*model.Group
	aliases map[string]*model.Alias

	// Pre-order, declaration order within each group.
	taskOrder  []*model.Task
	groupOrder []*model.Group
	aliasOrder []*model.Alias

	// The I/O and dependency resolvers ask for the same scope pairs many
	// times over; answers are memoized.
	ancestors *lru.Cache[scopePair, uncommonAncestors]
}

const ancestorCacheSize = 4096

type scopePair struct{ upstream, downstream string }

type uncommonAncestors struct{ common, up, down scopepath.Path }

// BuildIndex walks the tree depth-first in pre-order.
func BuildIndex(root *model.Group) *Index {
	ix := &Index{
		root:       root,
		taskPaths:  make(map[string]scopepath.Path),
		groupPaths: make(map[string]scopepath.Path),
		tasks:      make(map[string]*model.Task),
		groups:     make(map[string]*model.Group),
		aliases:    make(map[string]*model.Alias),
	}
	cache, err := lru.New[scopePair, uncommonAncestors](ancestorCacheSize)
	if err != nil {
		panic(fmt.Sprintf("resolve: %v", err))
	}
	ix.ancestors = cache

	var walk func(g *model.Group, parent scopepath.Path)
	walk = func(g *model.Group, parent scopepath.Path) {
		path := parent.Append(g.Name)
		ix.groupPaths[g.Name] = path
		ix.groups[g.Name] = g
		ix.groupOrder = append(ix.groupOrder, g)

		for _, child := range g.Children {
			switch c := child.(type) {
			case *model.Task:
				ix.taskPaths[c.Name] = path.Append(c.Name)
				ix.tasks[c.Name] = c
				ix.taskOrder = append(ix.taskOrder, c)
			case *model.Group:
				walk(c, path)
			case *model.Alias:
				ix.groupPaths[c.Name] = path.Append(c.Name)
				ix.aliases[c.Name] = c
				ix.aliasOrder = append(ix.aliasOrder, c)
			default:
				panic(fmt.Sprintf("resolve: unexpected node type %T", child))
			}
		}
	}
	walk(root, nil)

	return ix
}

// Root returns the root group.
func (ix *Index) Root() *model.Group { return ix.root }

// Tasks returns all tasks in pre-order.
func (ix *Index) Tasks() []*model.Task { return ix.taskOrder }

// Groups returns all non-alias groups in pre-order, root first.
func (ix *Index) Groups() []*model.Group { return ix.groupOrder }

// Aliases returns all aliases in pre-order.
func (ix *Index) Aliases() []*model.Alias { return ix.aliasOrder }

// Task looks up a task by name.
func (ix *Index) Task(name string) (*model.Task, bool) {
	t, ok := ix.tasks[name]
	return t, ok
}

// Group looks up a non-alias group by name.
func (ix *Index) Group(name string) (*model.Group, bool) {
	g, ok := ix.groups[name]
	return g, ok
}

// Alias looks up an alias by name.
func (ix *Index) Alias(name string) (*model.Alias, bool) {
	a, ok := ix.aliases[name]
	return a, ok
}

// TaskPath returns the path of a task.
func (ix *Index) TaskPath(name string) (scopepath.Path, bool) {
	p, ok := ix.taskPaths[name]
	return p, ok
}

// GroupPath returns the path of a group or alias.
func (ix *Index) GroupPath(name string) (scopepath.Path, bool) {
	p, ok := ix.groupPaths[name]
	return p, ok
}

// Path returns the path of any scope. Task names take precedence.
func (ix *Index) Path(name string) (scopepath.Path, error) {
	if p, ok := ix.taskPaths[name]; ok {
		return p, nil
	}
	if p, ok := ix.groupPaths[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScope, name)
}

// UncommonAncestors returns the suffixes of the upstream and downstream
// paths below their longest common prefix, and that prefix. The returned
// paths are shared and must not be modified.
func (ix *Index) UncommonAncestors(upstream, downstream string) (common, up, down scopepath.Path, err error) {
	key := scopePair{upstream, downstream}
	if hit, ok := ix.ancestors.Get(key); ok {
		return hit.common, hit.up, hit.down, nil
	}

	upPath, err := ix.Path(upstream)
	if err != nil {
		return nil, nil, nil, err
	}
	downPath, err := ix.Path(downstream)
	if err != nil {
		return nil, nil, nil, err
	}
	common, up, down = scopepath.Uncommon(upPath, downPath)
	ix.ancestors.Add(key, uncommonAncestors{common, up, down})
	return common, up, down, nil
}
