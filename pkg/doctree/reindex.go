package doctree

type positioned interface {
	setPosition(int)
}

// Reindex assigns position = index+1 to every element of list. Only the
// given sibling list is touched.
func Reindex[T positioned](list []T) {
	for i, item := range list {
		item.setPosition(i + 1)
	}
}
