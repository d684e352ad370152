package sat

// conflict describes why propagation stopped without reaching a fixed
// point. A binary conflict is never materialized in the pool -- its two
// literals are carried directly, mirroring the inline binary watch
// encoding in watch.go. A clause conflict instead carries the clause
// reference; by the time it is raised position 1 holds the triggering
// literal's negation, position 0 the clause's other watched literal, and
// every literal of the clause is false.
type conflict struct {
	isBinary bool
	litA     Literal // set for a binary conflict
	litB     Literal
	ref      ClauseRef // set for a clause conflict
}

func binaryConflict(a, b Literal) conflict { return conflict{isBinary: true, litA: a, litB: b} }
func clauseConflict(ref ClauseRef) conflict { return conflict{ref: ref} }

// hasConflict reports whether a zero-value conflict actually denotes one.
// binaryConflict/clauseConflict are the only constructors, and a clause
// conflict's ref is never nullClauseRef, so a conflict is "real" whenever
// either field that a constructor sets is non-zero.
func (c conflict) hasConflict() bool { return c.isBinary || c.ref != nullClauseRef }

// propagate runs two-watched-literal BCP from the trail's propagation
// pointer up to its top. It returns the first conflict
// encountered, if any; on conflict the current watch list's untouched tail
// is preserved exactly as found, so propagation can resume later without
// losing entries.
func (s *Solver) propagate() conflict {
	for s.trail.PropagationPending() {
		l := s.trail.NextToPropagate()
		s.Stats.Propagations++
		opp := l.Opposite()

		list := s.watches.List(l)
		write := 0
		read := 0
		for read < len(list) {
			word := list[read]

			if isBinaryEntry(word) {
				other := decodeBinary(word)
				read++
				switch s.LitValue(other) {
				case True:
					list[write] = word
					write++
				case False:
					list[write] = word
					write++
					write += copy(list[write:], list[read:])
					s.watches.SetList(l, list[:write])
					return binaryConflict(opp, other)
				default:
					s.enqueue(other, binaryAntecedent(opp))
					list[write] = word
					write++
				}
				continue
			}

			ref := decodeClauseRef(word)
			blocker := Literal(list[read+1])
			if s.LitValue(blocker) == True {
				list[write], list[write+1] = word, list[read+1]
				write += 2
				read += 2
				continue
			}

			if s.pool.Lit(ref, 0) == opp {
				s.pool.Swap(ref, 0, 1)
			}
			first := s.pool.Lit(ref, 0)
			if first != blocker && s.LitValue(first) == True {
				list[write], list[write+1] = encodeClauseRef(ref), uint32(first)
				write += 2
				read += 2
				continue
			}

			moved := false
			length := s.pool.Length(ref)
			for i := uint32(2); i < length; i++ {
				cand := s.pool.Lit(ref, i)
				if s.LitValue(cand) != False {
					s.pool.Swap(ref, 1, i)
					s.watches.AddClause(cand.Opposite(), ref, first)
					moved = true
					break
				}
			}
			if moved {
				read += 2
				continue
			}

			// No replacement found: first must be the unit, or a conflict.
			list[write], list[write+1] = word, uint32(first)
			write += 2
			read += 2
			if s.LitValue(first) == False {
				write += copy(list[write:], list[read:])
				s.watches.SetList(l, list[:write])
				return clauseConflict(ref)
			}
			s.enqueue(first, clauseAntecedent(ref))
		}
		s.watches.SetList(l, list[:write])
	}
	return conflict{}
}
