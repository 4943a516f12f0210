package diagram

import "sort"

// topLevel is the container key for edges whose endpoints share no flow
// ancestor.
const topLevel = -1

// rewriteEdges redirects every discovered edge to resolved endpoints and
// buckets the result by render container. A source with several exit
// sources fans out into one rewritten edge per source; identical triples
// collapse. Buckets are sorted by (source index, action, target index).
func (r *resolver) rewriteEdges() map[int][]edge {
	rewritten := make(map[edge]struct{}, len(r.g.edges))
	for _, e := range r.g.edges {
		tgt := r.entryIdx(e.tgt)
		for src := range r.exitSources(e.src) {
			rewritten[edge{src: src, action: e.action, tgt: tgt}] = struct{}{}
		}
	}

	buckets := make(map[int][]edge)
	for e := range rewritten {
		c := r.edgeContainer(e.src, e.tgt)
		buckets[c] = append(buckets[c], e)
	}
	for c := range buckets {
		es := buckets[c]
		sort.Slice(es, func(i, j int) bool {
			if es[i].src != es[j].src {
				return es[i].src < es[j].src
			}
			if es[i].action != es[j].action {
				return es[i].action < es[j].action
			}
			return es[i].tgt < es[j].tgt
		})
	}
	return buckets
}

// containerChain walks idx's container ancestry from direct container
// outward, terminated by topLevel. A guard set keeps a misconfigured parent
// cycle from looping.
func (r *resolver) containerChain(idx int) []int {
	var chain []int
	seen := make(map[int]struct{})
	c, ok := r.container[idx]
	for ok {
		if _, dup := seen[c]; dup {
			break
		}
		seen[c] = struct{}{}
		chain = append(chain, c)
		c, ok = r.parent[c]
	}
	return append(chain, topLevel)
}

// edgeContainer returns the lowest common ancestor container of the two
// endpoints: the first entry of the source chain that also appears in the
// target chain. Both chains end with topLevel, so a result always exists.
func (r *resolver) edgeContainer(src, tgt int) int {
	tgtAncestors := make(map[int]struct{})
	for _, c := range r.containerChain(tgt) {
		tgtAncestors[c] = struct{}{}
	}
	for _, c := range r.containerChain(src) {
		if _, shared := tgtAncestors[c]; shared {
			return c
		}
	}
	return topLevel
}
