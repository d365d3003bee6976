package model

// indexer interface is design to give a unique index to a combination of decision variable's attributes and vice versa.
// Assignment variables come first, continuity indicators follow them
type indexer interface {
	// Returns a unique index to a combination of assignment variable's attributes
	Index(class, day, session, subject uint64) uint64
	// Returns a combination of assignment variable's attributes from a unique index
	Attributes(index uint64) (class, day, session, subject uint64)

	// Returns a unique index to a combination of continuity indicator's attributes
	WindowIndex(day, subject, window uint64) uint64
	// Returns a combination of continuity indicator's attributes from a unique index
	WindowAttributes(index uint64) (day, subject, window uint64)

	// Checks whether the index belongs to an assignment variable (and not to an indicator)
	IsAssignment(index uint64) bool

	// Total amount of indexed variables
	Variables() uint64
}

func newIndexer(classes, days, sessions, subjects, windows uint64) indexer {
	return &indexerImplementation{
		classes:  classes,
		days:     days,
		sessions: sessions,
		subjects: subjects,
		windows:  windows,
	}
}
