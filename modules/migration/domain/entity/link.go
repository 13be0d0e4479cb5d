package entity

// DeferredLink is a cross-entity reference found on a legacy row whose target
// may not exist until a later phase. Both sides are identified by canonical
// key; ids are resolved only when the link is applied. TargetFallbackKey is
// tried when TargetKey does not resolve.
type DeferredLink struct {
	SourceKind        Kind
	SourceKey         string
	TargetKind        Kind
	TargetKey         string
	TargetFallbackKey string
	Relation          Relation
}

// LinkQueue collects deferred links during a run. Not goroutine-safe.
type LinkQueue struct {
	links []DeferredLink
	seen  map[string]struct{}
}

func NewLinkQueue() *LinkQueue {
	return &LinkQueue{seen: map[string]struct{}{}}
}

// Push queues a link; a repeated (relation, source, target) is ignored.
func (q *LinkQueue) Push(l DeferredLink) {
	id := string(l.Relation) + "|" + l.SourceKey + "|" + l.TargetKey
	if _, ok := q.seen[id]; ok {
		return
	}
	q.seen[id] = struct{}{}
	q.links = append(q.links, l)
}

// Pending returns the queued links of one relation in insertion order.
func (q *LinkQueue) Pending(rel Relation) []DeferredLink {
	out := make([]DeferredLink, 0, len(q.links))
	for _, l := range q.links {
		if l.Relation == rel {
			out = append(out, l)
		}
	}
	return out
}

func (q *LinkQueue) Len() int {
	return len(q.links)
}
