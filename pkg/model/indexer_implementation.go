package model

type indexerImplementation struct {
	classes  uint64
	days     uint64
	sessions uint64
	subjects uint64
	windows  uint64
}

func (indexer *indexerImplementation) assignments() uint64 {
	return indexer.classes * indexer.days * indexer.sessions * indexer.subjects
}

func (indexer *indexerImplementation) Index(class, day, session, subject uint64) uint64 {
	return class + indexer.classes*day + indexer.classes*indexer.days*session + indexer.classes*indexer.days*indexer.sessions*subject + 1
}

func (indexer *indexerImplementation) Attributes(index uint64) (class, day, session, subject uint64) {
	index = index - 1
	class = index % indexer.classes
	index = index / indexer.classes

	day = index % indexer.days
	index = index / indexer.days

	session = index % indexer.sessions
	index = index / indexer.sessions

	subject = index % indexer.subjects

	return class, day, session, subject
}

func (indexer *indexerImplementation) WindowIndex(day, subject, window uint64) uint64 {
	return indexer.assignments() + day + indexer.days*subject + indexer.days*indexer.subjects*window + 1
}

func (indexer *indexerImplementation) WindowAttributes(index uint64) (day, subject, window uint64) {
	index = index - indexer.assignments() - 1
	day = index % indexer.days
	index = index / indexer.days

	subject = index % indexer.subjects
	index = index / indexer.subjects

	window = index % indexer.windows

	return day, subject, window
}

func (indexer *indexerImplementation) IsAssignment(index uint64) bool {
	return index >= 1 && index <= indexer.assignments()
}

func (indexer *indexerImplementation) Variables() uint64 {
	return indexer.assignments() + indexer.days*indexer.subjects*indexer.windows
}
