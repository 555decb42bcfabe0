package mapper

// Dealer is a worklist of type pairs that hands out every pair once.
type Dealer struct {
	needs []TypePair
	done  map[TypePair]struct{}
}

// NextNeeds pops the oldest pair not handed out yet.
func (d *Dealer) NextNeeds() (pair TypePair, ok bool) {
	for len(d.needs) > 0 {
		pair, d.needs = d.needs[0], d.needs[1:]

		if _, exists := d.done[pair]; !exists {
			d.Done(pair)

			return pair, true
		}
	}

	return TypePair{}, false
}

// Needs queues pair unless it was already handed out.
func (d *Dealer) Needs(pair TypePair) {
	if _, exists := d.done[pair]; !exists {
		d.needs = append(d.needs, pair)
	}
}

// Done marks pair as handled without handing it out.
func (d *Dealer) Done(pair TypePair) {
	if d.done == nil {
		d.done = make(map[TypePair]struct{})
	}

	d.done[pair] = struct{}{}
}
