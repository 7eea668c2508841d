package sections

// Map is an ordered, read-only view of résumé sections in document order.
type Map struct {
	order []Kind
	texts map[Kind]string
}

func newMap() *Map {
	return &Map{texts: make(map[Kind]string)}
}

// FromTexts builds a map from already separated section texts, keeping the given order.
func FromTexts(kinds []Kind, texts []string) *Map {
	m := newMap()
	for i, kind := range kinds {
		if i >= len(texts) || texts[i] == "" {
			continue
		}
		m.append(kind, texts[i])
	}
	return m
}

func (m *Map) append(kind Kind, content string) {
	existing, ok := m.texts[kind]
	if !ok {
		m.order = append(m.order, kind)
		m.texts[kind] = content
		return
	}
	m.texts[kind] = existing + "\n" + content
}

// Get returns the text of a section, or "" when it is absent.
func (m *Map) Get(kind Kind) string {
	if m == nil {
		return ""
	}
	return m.texts[kind]
}

// Has reports whether the section was found.
func (m *Map) Has(kind Kind) bool {
	if m == nil {
		return false
	}
	_, ok := m.texts[kind]
	return ok
}

// Kinds returns the found sections in document order.
func (m *Map) Kinds() []Kind {
	if m == nil {
		return nil
	}
	out := make([]Kind, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of sections, Header included.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Named returns the number of sections that came from a recognised heading.
func (m *Map) Named() int {
	n := 0
	for _, kind := range m.Kinds() {
		if kind != Header {
			n++
		}
	}
	return n
}

// Texts returns section texts in document order, parallel to Kinds.
func (m *Map) Texts() []string {
	kinds := m.Kinds()
	out := make([]string, len(kinds))
	for i, kind := range kinds {
		out[i] = m.texts[kind]
	}
	return out
}
