package model

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexAndAttributesDeterministic(t *testing.T) {
	// Arrange
	scenarios := [][]uint64{
		{2, 5, 3, 5, 9},
		{1, 1, 1, 1, 1},
		{3, 6, 3, 7, 5},
		{4, 5, 2, 10, 9},
	}

	for _, scenario := range scenarios {
		classes, days, sessions, subjects, windows := scenario[0], scenario[1], scenario[2], scenario[3], scenario[4]

		// Act
		indexer := newIndexer(classes, days, sessions, subjects, windows)

		indices := make([]uint64, 0, indexer.Variables())
		for class := range classes {
			for day := range days {
				for session := range sessions {
					for subject := range subjects {
						indices = append(indices, indexer.Index(class, day, session, subject))
					}
				}
			}
		}
		for day := range days {
			for subject := range subjects {
				for window := range windows {
					indices = append(indices, indexer.WindowIndex(day, subject, window))
				}
			}
		}

		// Assert
		slices.Sort(indices)
		assert.Equal(t, uint64(len(indices)), indexer.Variables())
		for i, index := range indices {
			assert.Equal(t, uint64(i+1), index) // Indices are dense and 1-based
			if indexer.IsAssignment(index) {
				class, day, session, subject := indexer.Attributes(index)
				assert.Equal(t, index, indexer.Index(class, day, session, subject))
			} else {
				day, subject, window := indexer.WindowAttributes(index)
				assert.Equal(t, index, indexer.WindowIndex(day, subject, window))
			}
		}
	}
}

func TestIndexAndAttributesNonDeterministic(t *testing.T) {
	for range 10 {
		// Arrange
		classes := uint64(rand.Intn(4) + 1)
		days := uint64(rand.Intn(7) + 1)
		sessions := uint64(rand.Intn(3) + 1)
		subjects := uint64(rand.Intn(10) + 1)
		windows := uint64(rand.Intn(9) + 1)
		indexer := newIndexer(classes, days, sessions, subjects, windows)

		for range 50 {
			class, day := uint64(rand.Intn(int(classes))), uint64(rand.Intn(int(days)))
			session, subject := uint64(rand.Intn(int(sessions))), uint64(rand.Intn(int(subjects)))
			window := uint64(rand.Intn(int(windows)))

			// Act
			index := indexer.Index(class, day, session, subject)
			windowIndex := indexer.WindowIndex(day, subject, window)

			// Assert
			assert.True(t, indexer.IsAssignment(index))
			assert.False(t, indexer.IsAssignment(windowIndex))
			gotClass, gotDay, gotSession, gotSubject := indexer.Attributes(index)
			assert.Equal(t, []uint64{class, day, session, subject}, []uint64{gotClass, gotDay, gotSession, gotSubject})
			gotDay, gotSubject, gotWindow := indexer.WindowAttributes(windowIndex)
			assert.Equal(t, []uint64{day, subject, window}, []uint64{gotDay, gotSubject, gotWindow})
		}
	}
}
