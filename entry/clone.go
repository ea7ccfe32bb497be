package entry

// Clone returns a deep copy of e. The copy shares no memory with e, including
// every entry of its symlink chain. A chain that loops back on itself is
// copied as an equivalent loop.
func (e Entry) Clone() Entry {
	return e.clone(map[*Entry]*Entry{})
}

// clone copies e, using seen to map original chain links to their copies so
// that cycles terminate.
func (e Entry) clone(seen map[*Entry]*Entry) Entry {
	switch {
	case e.dir != nil:
		d := *e.dir
		d.Metadata = d.Metadata.clone(seen)
		return Entry{dir: &d}
	case e.file != nil:
		f := *e.file
		f.Metadata = f.Metadata.clone(seen)
		f.Type = clonePtr(f.Type)
		return Entry{file: &f}
	default:
		return Entry{}
	}
}

func (m Metadata) clone(seen map[*Entry]*Entry) Metadata {
	m.User = clonePtr(m.User)
	m.Group = clonePtr(m.Group)
	m.Pex = clonePtr(m.Pex)
	if m.Symlink != nil {
		m.Symlink = m.Symlink.cloneLink(seen)
	}
	return m
}

// cloneLink copies the chain link at l. The copy is registered in seen before
// its own target is copied so a link reached twice maps to one copy.
func (l *Entry) cloneLink(seen map[*Entry]*Entry) *Entry {
	if c, ok := seen[l]; ok {
		return c
	}
	c := &Entry{}
	seen[l] = c
	*c = l.clone(seen)
	return c
}
