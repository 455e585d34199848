// Copyright 2024 BINARY Members
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package deltamin

import (
	"context"
	"slices"
	"time"

	"github.com/DELTA-GR0UP/deltamin/pkg/kway"
)

// HDDResult is what HDD returns: the final rendered yield plus the same
// counters every reducer produces. HDD has no single flat Configuration
// at the end (its committed state lives in the tree, pruned
// level-by-level), so it reports its own result type rather than Result.
type HDDResult struct {
	Yield     []byte
	Snapshot  Snapshot
	Cancelled bool
}

// HDD runs hierarchical delta debugging over a parse tree (spec.md
// §4.6): level by level, it collects the removable nodes at that level,
// groups them by sibling subtree, and runs a 1-minimizing sequence
// reducer independently per group against an oracle that prunes the
// tree at that level before yielding a candidate. Each group's kept
// node-id sequence is then recombined by a k-way merge. The tree is
// mutated only by committing a level's minimal subset; trial candidates
// never alias the committed tree (spec.md §5).
func HDD(ctx context.Context, tree *Tree, oracle Oracle, cfg Config) (HDDResult, error) {
	s, err := newSession(cfg, oracle, func(Configuration) []byte { return nil })
	if err != nil {
		return HDDResult{}, err
	}
	defer s.close()
	if tree == nil || tree.Root == nil {
		return HDDResult{}, ErrEmptyInput
	}

	initial := tree.Yield(tree.Root)
	if s.queryBytes(ctx, initial) != FAIL {
		return HDDResult{}, ErrContractViolation
	}

	deadline := deadlineFor(cfg.TimeBudget)
	cancelled := false

	// Walk every level the tree actually reaches, not just the ones that
	// happen to carry a removable node: the root's own level commonly has
	// none, and stopping there would never reach its children at all.
	for level := 0; level <= tree.maxDepth(); level++ {
		if s.cancelled(ctx, deadline) {
			cancelled = true
			break
		}

		nodes := tree.levelNodes(level)
		if len(nodes) == 0 {
			continue
		}
		keptIDs, levelCancelled := reduceLevelGrouped(ctx, s, tree, level, nodes, cfg, deadline)
		if levelCancelled {
			cancelled = true
			break
		}

		keep := make(map[int]bool, len(keptIDs))
		for _, id := range keptIDs {
			keep[id] = true
		}
		tree.commit(level, keep)
	}

	yield := tree.Yield(tree.Root)
	return HDDResult{
		Yield:     yield,
		Snapshot:  s.counters.snapshot(len(yield), cancelled, s.cacheInconsistencies()),
		Cancelled: cancelled,
	}, nil
}

// reduceLevelGrouped partitions a level's removable nodes by their
// immediate parent and reduces each sibling group as its own sequence
// configuration (the other groups held fixed at "present"), then
// recombines the surviving node ids from each group with a k-way merge
// (SPEC_FULL.md "Level merge"). Disjointness of the groups' node-id sets
// only makes the merge well-defined as a set operation; it does NOT
// imply the oracle's FAIL predicate decomposes across groups (a
// predicate like "count(keptA) + count(keptB) >= k" does not). So the
// merged candidate is re-queried against the oracle before it is
// trusted: if it still reproduces FAIL, the grouped reduction is sound
// and its result is used as-is; otherwise the independent per-group
// reductions already threw away information the combined predicate
// needed, and this falls back to a single ungrouped reduction over the
// whole level (spec.md §8 "the returned I' satisfies O(I') = FAIL").
func reduceLevelGrouped(ctx context.Context, s *session, tree *Tree, level int, nodes []*Node, cfg Config, deadline time.Time) ([]int, bool) {
	groups := groupBySiblings(nodes)

	if len(groups) <= 1 {
		query := hddLevelQuery(s, tree, level, nodes, nodes)
		kept, cancelled := reduceLevel(ctx, s, query, len(nodes), cfg.HDDInnerReducer, deadline)
		return idsOfKept(nodes, kept), cancelled
	}

	sequences := make([][]int, 0, len(groups))
	cancelled := false
	for _, group := range groups {
		query := hddLevelQuery(s, tree, level, nodes, group)
		kept, groupCancelled := reduceLevel(ctx, s, query, len(group), cfg.HDDInnerReducer, deadline)
		sequences = append(sequences, idsOfKept(group, kept))
		if groupCancelled {
			cancelled = true
			break
		}
	}
	if cancelled {
		return kwayMergeLevel(sequences...), true
	}

	merged := kwayMergeLevel(sequences...)

	combined := hddLevelQuery(s, tree, level, nodes, nodes)
	if combined(ctx, configurationOfIDs(nodes, merged)) == FAIL {
		return merged, false
	}

	// The merge did not reproduce FAIL: the level's predicate does not
	// decompose across sibling groups. Fall back to a single ungrouped
	// reduction over every node at this level, which re-establishes
	// soundness at the cost of the per-group parallel-reduction saving.
	s.logger.Warnf("HDD level %d: merged sibling-group result did not reproduce FAIL, falling back to an ungrouped reduction", level)
	fallbackQuery := hddLevelQuery(s, tree, level, nodes, nodes)
	kept, fallbackCancelled := reduceLevel(ctx, s, fallbackQuery, len(nodes), cfg.HDDInnerReducer, deadline)
	return idsOfKept(nodes, kept), fallbackCancelled
}

// idsOfKept maps a reduceLevel result (indices into group) back to the
// node ids those indices denote, sorted for stable merging/committing.
func idsOfKept(group []*Node, kept Configuration) []int {
	ids := make([]int, 0, kept.Len())
	for _, idx := range kept {
		ids = append(ids, group[idx].ID)
	}
	slices.Sort(ids)
	return ids
}

// configurationOfIDs maps a sorted set of node ids back to their
// positions within nodes, the index space hddLevelQuery(..., nodes,
// nodes) expects.
func configurationOfIDs(nodes []*Node, ids []int) Configuration {
	keep := make(map[int]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	c := make(Configuration, 0, len(ids))
	for i, n := range nodes {
		if keep[n.ID] {
			c = append(c, i)
		}
	}
	return c
}

// groupBySiblings partitions nodes by Parent, preserving each group's
// left-to-right document order. Nodes with a nil Parent (only possible
// if the root itself were removable) form their own singleton group.
func groupBySiblings(nodes []*Node) [][]*Node {
	order := make([]*Node, 0)
	byParent := make(map[*Node][]*Node)
	for _, n := range nodes {
		if n.Parent == nil {
			order = append(order, n)
			byParent[n] = append(byParent[n], n)
			continue
		}
		if _, seen := byParent[n.Parent]; !seen {
			order = append(order, n.Parent)
		}
		byParent[n.Parent] = append(byParent[n.Parent], n)
	}
	groups := make([][]*Node, 0, len(order))
	for _, key := range order {
		groups = append(groups, byParent[key])
	}
	return groups
}

func reduceLevel(ctx context.Context, s *session, query func(context.Context, Configuration) Verdict, n int, inner InnerReducer, deadline time.Time) (Configuration, bool) {
	c := fullIndices(n)
	if inner == InnerTicTocMin {
		return tictocLoop(ctx, s, query, c, deadline)
	}
	return ddminLoop(ctx, s, query, c, deadline)
}

// hddLevelQuery builds the per-level tree-aware query for a candidate
// subset of group: every removable node at this level outside group
// stays present (unchanged by this group's own reduction), while group
// nodes are kept or pruned per c. It short circuits to UNRESOLVED
// without an oracle call when the resulting tree is illegal (spec.md
// §4.6 "Policy", §7 "Tree illegality").
func hddLevelQuery(s *session, tree *Tree, level int, allNodes, group []*Node) func(context.Context, Configuration) Verdict {
	return func(ctx context.Context, c Configuration) Verdict {
		keep := make(map[int]bool, len(allNodes))
		for _, n := range allNodes {
			keep[n.ID] = true
		}
		inConfig := make(map[int]bool, c.Len())
		for _, idx := range c {
			inConfig[idx] = true
		}
		for i, n := range group {
			if !inConfig[i] {
				keep[n.ID] = false
			}
		}

		yield, legal := tree.withPruned(level, keep)
		if !legal {
			s.counters.recordQuery(UNRESOLVED)
			return UNRESOLVED
		}
		return s.queryBytes(ctx, yield)
	}
}

func fullIndices(n int) Configuration {
	c := make(Configuration, n)
	for i := range c {
		c[i] = i
	}
	return c
}

// kwayMergeLevel combines the sorted kept-node-id sequences contributed
// by disjoint sibling subtrees into one globally ordered sequence.
func kwayMergeLevel(groups ...[]int) []int {
	return kway.Merge(groups...)
}
