package memo

// trie stores one value per key path. Each argument of a call selects one level.
// It is not safe for concurrent use; Cache serializes access to it.
type trie[O any] struct {
	root *trieNode[O]
	size int
}

type trieNode[O any] struct {
	children map[any]*trieNode[O]
	value    O
	stored   bool
}

func newTrie[O any]() *trie[O] {
	return &trie[O]{root: &trieNode[O]{}}
}

func (t *trie[O]) Load(key Key) (O, bool) {
	n := t.root
	for _, part := range key.parts {
		next, ok := n.children[part]
		if !ok {
			var zero O
			return zero, false
		}
		n = next
	}
	return n.value, n.stored
}

func (t *trie[O]) Store(key Key, value O) {
	n := t.root
	for _, part := range key.parts {
		if n.children == nil {
			n.children = make(map[any]*trieNode[O])
		}
		next, ok := n.children[part]
		if !ok {
			next = &trieNode[O]{}
			n.children[part] = next
		}
		n = next
	}
	if !n.stored {
		t.size++
	}
	n.value = value
	n.stored = true
}

func (t *trie[O]) Len() int {
	return t.size
}
