package model

// Assemble merges the study schedule and the fixed lessons into the eleven positions of every class and day.
// Fixed subjects are copied verbatim, missing study assignments become empty study entries
func Assemble(instance *Instance, study StudySchedule, plan FixedLessonPlan) Schedule {
	schedule := make(Schedule, len(instance.Classes))
	for _, class := range instance.Classes {
		schedule[class] = make(map[string][]ScheduleEntry, len(instance.Days))
		for _, day := range instance.Days {
			entries := make([]ScheduleEntry, PositionsPerDay)
			for position := range entries {
				entries[position] = ScheduleEntry{Position: position, Kind: KindFixed}
			}

			assignment := study[class][day]
			for _, session := range Sessions {
				entries[session.Position()] = ScheduleEntry{
					Position: session.Position(),
					Subject:  assignment.Get(session),
					Kind:     KindStudy,
					Session:  session.String(),
				}
			}

			for ordinal, subject := range plan[class][day] {
				if ordinal >= FixedLessonsPerDay {
					break
				}
				entries[FixedPosition(ordinal)].Subject = subject
			}

			schedule[class][day] = entries
		}
	}
	return schedule
}

// StudyOf recovers the study schedule from the study entries of a schedule
func StudyOf(instance *Instance, schedule Schedule) StudySchedule {
	study := NewStudySchedule(instance)
	for _, class := range instance.Classes {
		for _, day := range instance.Days {
			assignment := StudyAssignment{}
			for _, entry := range schedule[class][day] {
				if session, ok := PositionSession(entry.Position); ok && entry.Kind == KindStudy {
					assignment.Set(session, entry.Subject)
				}
			}
			study[class][day] = assignment
		}
	}
	return study
}
