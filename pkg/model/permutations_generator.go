package model

import "math"

type permutationGenerator interface {
	// Attributes' order in the permutation parameter is the following: Class, Day, Session, Subject.
	// All the constraints must take into account that if the value of permutation[i] (for all feasible i's) is math.MaxUint64 then the permutation is not ready to be evaluated if this evaluation involves permutation[i]
	//
	// Example:
	//
	//	generator := model.newPermutationGenerator(Classes, Days, Sessions, Subjects)
	//
	//	permutations := generator.ConstrainedPermutations([]func(permutation []uint64) bool{
	//				func(permutation []uint64) bool {
	//	       		// Verify "permutation[2] == math.MaxUint64", since the predicate "permutation[2] == 2" relies in this index
	//					return permutation[2] == math.MaxUint64 || permutation[2] == 2
	//				},
	//			})
	ConstrainedPermutations(constraints []func(permutation []uint64) bool) [][]uint64
}

func newPermutationGenerator(classes, days, sessions, subjects uint64) permutationGenerator {
	return &permutationGeneratorImplementation{classes, days, sessions, subjects}
}

type permutationGeneratorImplementation struct {
	classes, days, sessions, subjects uint64
}

func (generator *permutationGeneratorImplementation) ConstrainedPermutations(constraints []func(permutation []uint64) bool) [][]uint64 {
	permutations := make([][]uint64, 0)
	generator.constrainedPermutations(
		constraints,
		[]uint64{generator.classes, generator.days, generator.sessions, generator.subjects},
		0,
		[]uint64{math.MaxUint64, math.MaxUint64, math.MaxUint64, math.MaxUint64},
		&permutations,
	)
	return permutations
}

func (generator *permutationGeneratorImplementation) constrainedPermutations(
	constraints []func(permutation []uint64) bool,
	domains []uint64,
	currentDomain int,
	permutation []uint64,
	permutations *[][]uint64) {

	if currentDomain >= len(domains) {
		permutationCopy := make([]uint64, len(permutation))
		copy(permutationCopy, permutation)
		*permutations = append(*permutations, permutationCopy)
		return
	}

	for i := range domains[currentDomain] {
		permutation[currentDomain] = i
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(permutation) {
				constraintViolated = true
				break
			}
		}

		if constraintViolated {
			continue
		}

		generator.constrainedPermutations(constraints, domains, currentDomain+1, permutation, permutations)
	}

	permutation[currentDomain] = math.MaxUint64
}
