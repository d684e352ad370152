package sat

// Occurrences holds, per literal, the flat list of live clause references
// containing that literal -- the "simpler flat-index form" the pool's data
// model calls for during preprocessing, where every entry is a bare
// ClauseRef and binary clauses are ordinary pool clauses rather than
// Watches entries.
type Occurrences struct {
	lists [][]ClauseRef
}

// NewOccurrences returns an empty Occurrences with room for nVars variables.
func NewOccurrences(nVars int) *Occurrences {
	return &Occurrences{lists: make([][]ClauseRef, 2*nVars)}
}

// Grow adds the two literal slots for one freshly allocated variable.
func (o *Occurrences) Grow() {
	o.lists = append(o.lists, nil, nil)
}

// Add records that ref contains literal l.
func (o *Occurrences) Add(l Literal, ref ClauseRef) {
	o.lists[l] = append(o.lists[l], ref)
}

// Remove deletes one occurrence of ref from l's list.
func (o *Occurrences) Remove(l Literal, ref ClauseRef) {
	list := o.lists[l]
	for i, r := range list {
		if r == ref {
			list[i] = list[len(list)-1]
			o.lists[l] = list[:len(list)-1]
			return
		}
	}
}

// List returns the clauses currently containing l.
func (o *Occurrences) List(l Literal) []ClauseRef { return o.lists[l] }

// Count returns the number of clauses currently containing l.
func (o *Occurrences) Count(l Literal) int { return len(o.lists[l]) }

// Clear empties every occurrence list (used once preprocessing hands off
// to search-time Watches).
func (o *Occurrences) Clear() {
	for i := range o.lists {
		o.lists[i] = nil
	}
}
