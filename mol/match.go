package mol

import (
	"sort"
	"strconv"
	"strings"
)

// A matcher finds subgraph monomorphisms of a query molecule in a target
// molecule. Atoms match when their elements are equal or either one is a
// "*" wildcard, and bonds match when their orders are equal. Target atoms
// may have more bonds than the query atoms mapped onto them.
type matcher struct {
	query, target *Molecule

	// order is a breadth first ordering of the query atoms. parent[q] is the
	// query atom through which q was reached, or -1 for the root of each
	// connected component.
	order  []int
	parent []int

	qmap []int  // query atom -> target atom
	used []bool // target atoms that are mapped or excluded
}

func newMatcher(query, target *Molecule, exclude []bool) *matcher {
	mt := &matcher{
		query:  query,
		target: target,
		parent: make([]int, len(query.Atoms)),
		qmap:   make([]int, len(query.Atoms)),
		used:   make([]bool, len(target.Atoms)),
	}
	copy(mt.used, exclude)
	for i := range mt.qmap {
		mt.qmap[i] = -1
	}

	seen := make([]bool, len(query.Atoms))
	for root := range query.Atoms {
		if seen[root] {
			continue
		}
		seen[root] = true
		mt.parent[root] = -1
		queue := []int{root}
		for len(queue) > 0 {
			q := queue[0]
			queue = queue[1:]
			mt.order = append(mt.order, q)
			for _, n := range query.Neighbors(q) {
				if !seen[n] {
					seen[n] = true
					mt.parent[n] = q
					queue = append(queue, n)
				}
			}
		}
	}
	return mt
}

// feasible returns false when the unused target atoms cannot possibly host
// the query, by comparing per element atom counts. Target wildcards make up
// for any shortfall.
func (mt *matcher) feasible() bool {
	need := make(map[string]int)
	for _, a := range mt.query.Atoms {
		if a.Element != "*" {
			need[a.Element]++
		}
	}
	have := make(map[string]int)
	free := 0
	for i, a := range mt.target.Atoms {
		if !mt.used[i] {
			have[a.Element]++
			free++
		}
	}
	if free < len(mt.query.Atoms) {
		return false
	}
	short := 0
	for elem, n := range need {
		if have[elem] < n {
			short += n - have[elem]
		}
	}
	return short <= have["*"]
}

func (mt *matcher) atomsMatch(q, t int) bool {
	qa, ta := mt.query.Atoms[q], mt.target.Atoms[t]
	if qa.Element != "*" && ta.Element != "*" && qa.Element != ta.Element {
		return false
	}
	if mt.target.Degree(t) < mt.query.Degree(q) {
		return false
	}

	// Every bond to an already mapped query atom must exist in the target.
	for _, bi := range mt.query.AtomBonds(q) {
		qb := mt.query.Bonds[bi]
		other := mt.qmap[qb.Other(q)]
		if other < 0 {
			continue
		}
		tbi := mt.target.BondBetween(t, other)
		if tbi < 0 || mt.target.Bonds[tbi].Order != qb.Order {
			return false
		}
	}
	return true
}

// search extends a partial mapping of the first k atoms in mt.order. Each
// complete mapping is passed to found; search stops when found returns
// false.
func (mt *matcher) search(k int, found func([]int) bool) bool {
	if k == len(mt.order) {
		return found(mt.qmap)
	}
	q := mt.order[k]
	var cands []int
	if p := mt.parent[q]; p >= 0 {
		cands = mt.target.Neighbors(mt.qmap[p])
	} else {
		cands = make([]int, len(mt.target.Atoms))
		for i := range cands {
			cands[i] = i
		}
	}
	for _, t := range cands {
		if mt.used[t] || !mt.atomsMatch(q, t) {
			continue
		}
		mt.qmap[q], mt.used[t] = t, true
		more := mt.search(k+1, found)
		mt.qmap[q], mt.used[t] = -1, false
		if !more {
			return false
		}
	}
	return true
}

// firstMatch returns a mapping from query atoms to target atoms that avoids
// excluded target atoms, or nil if there is none.
func firstMatch(query, target *Molecule, exclude []bool) []int {
	if len(query.Atoms) == 0 {
		return nil
	}
	mt := newMatcher(query, target, exclude)
	if !mt.feasible() {
		return nil
	}
	var match []int
	mt.search(0, func(qmap []int) bool {
		match = append([]int(nil), qmap...)
		return false
	})
	return match
}

// SubstructMatches returns up to max matches of query in target. Each match
// maps query atom indices to target atom indices. Matches covering the same
// set of target atoms are reported once. If max <= 0, all matches are
// returned.
func SubstructMatches(query, target *Molecule, max int) [][]int {
	if len(query.Atoms) == 0 {
		return nil
	}
	mt := newMatcher(query, target, nil)
	if !mt.feasible() {
		return nil
	}
	var matches [][]int
	seen := make(map[string]bool)
	mt.search(0, func(qmap []int) bool {
		key := atomSetKey(qmap)
		if !seen[key] {
			seen[key] = true
			matches = append(matches, append([]int(nil), qmap...))
		}
		return max <= 0 || len(matches) < max
	})
	return matches
}

func atomSetKey(qmap []int) string {
	sorted := append([]int(nil), qmap...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, t := range sorted {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ",")
}
