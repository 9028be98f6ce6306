package renamer

import "github.com/mitchelldurbincs/ProvinceRenamer/internal/core"

// Pool owns the candidates still available for assignment. Taking a
// candidate removes it from the pool and marks it used.
type Pool struct {
	available []*core.Candidate
	taken     []*core.Candidate
}

// NewPool takes ownership of the given candidates. Candidates that are
// already used are left out.
func NewPool(candidates []*core.Candidate) *Pool {
	p := &Pool{available: make([]*core.Candidate, 0, len(candidates))}
	for _, c := range candidates {
		if c != nil && !c.Used() {
			p.available = append(p.available, c)
		}
	}
	return p
}

// Len returns the number of candidates still available.
func (p *Pool) Len() int { return len(p.available) }

// Applicable returns the available candidates that may name a province with
// the given terrain and neighbour terrain, in pool order.
func (p *Pool) Applicable(province core.Mask, neighbours []core.Mask) []*core.Candidate {
	var out []*core.Candidate
	for _, c := range p.available {
		if c.Applicable(province, neighbours) {
			out = append(out, c)
		}
	}
	return out
}

// Take removes c from the pool and marks it used. It reports false if c is
// not available.
func (p *Pool) Take(c *core.Candidate) bool {
	for i, have := range p.available {
		if have != c {
			continue
		}
		p.available = append(p.available[:i], p.available[i+1:]...)
		c.MarkUsed()
		p.taken = append(p.taken, c)
		return true
	}
	return false
}

// Remaining returns the names still available, in pool order.
func (p *Pool) Remaining() []string {
	out := make([]string, len(p.available))
	for i, c := range p.available {
		out[i] = c.Name
	}
	return out
}

// Taken returns the candidates consumed so far, in assignment order.
func (p *Pool) Taken() []*core.Candidate {
	out := make([]*core.Candidate, len(p.taken))
	copy(out, p.taken)
	return out
}
