package model

// Duty is one unit a teacher gives: a class at a position of the day
type Duty struct {
	Position int    `json:"position"`
	Class    string `json:"class"`
	Kind     Kind   `json:"kind"`
	Session  string `json:"session,omitempty"`
}

// SubjectWorkload summarizes the week of a subject's teacher
type SubjectWorkload struct {
	Subject string            `json:"subject"`
	Daily   map[string]int    `json:"daily"`
	Weekly  int               `json:"weekly"`
	Study   int               `json:"study"`
	Windows int               `json:"windows"`
	Duties  map[string][]Duty `json:"duties"`
}

// Workload computes, per managed subject, the teacher's daily and weekly units over all classes
func Workload(instance *Instance, schedule Schedule) []SubjectWorkload {
	report := continuity(instance, schedule)

	workloads := make([]SubjectWorkload, 0, len(instance.Subjects))
	for _, subject := range instance.Subjects {
		workload := SubjectWorkload{
			Subject: subject,
			Daily:   make(map[string]int, len(instance.Days)),
			Duties:  make(map[string][]Duty, len(instance.Days)),
		}

		for _, day := range instance.Days {
			workload.Daily[day] = teacherDailyLoadCount(schedule, instance, day, subject)
			workload.Weekly += workload.Daily[day]

			duties := make([]Duty, 0)
			for position := range PositionsPerDay {
				for _, class := range instance.Classes {
					entries := schedule[class][day]
					if position >= len(entries) || entries[position].Subject != subject {
						continue
					}
					entry := entries[position]
					duties = append(duties, Duty{Position: position, Class: class, Kind: entry.Kind, Session: entry.Session})
					if entry.Kind == KindStudy {
						workload.Study++
					}
				}
			}
			workload.Duties[day] = duties
		}

		for _, window := range report.Windows {
			if window.Subject == subject {
				workload.Windows++
			}
		}
		workloads = append(workloads, workload)
	}
	return workloads
}
