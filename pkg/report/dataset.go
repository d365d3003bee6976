package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/limaJavier/selfstudy/pkg/model"
	"github.com/samber/lo"
)

// Dataset is a titled table shared by every renderer
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// StudyDataset lists the study assignment of every class and day
func StudyDataset(instance *model.Instance, study model.StudySchedule) Dataset {
	headers := append([]string{"class", "day"}, lo.Map(model.Sessions, func(session model.Session, _ int) string { return session.String() })...)
	rows := make([][]string, 0, len(instance.Classes)*len(instance.Days))
	for _, class := range instance.Classes {
		for _, day := range instance.Days {
			row := []string{class, day}
			for _, session := range model.Sessions {
				row = append(row, orDash(study[class][day].Get(session)))
			}
			rows = append(rows, row)
		}
	}
	return Dataset{Title: "Study schedule", Headers: headers, Rows: rows}
}

// ScheduleDatasets returns one day-by-position table per class. Study slots are marked with a star
func ScheduleDatasets(instance *model.Instance, schedule model.Schedule) []Dataset {
	headers := []string{"day"}
	for position := range model.PositionsPerDay {
		if session, ok := model.PositionSession(position); ok {
			headers = append(headers, session.String())
		} else {
			ordinal, _ := model.PositionOrdinal(position)
			headers = append(headers, strconv.Itoa(ordinal+1))
		}
	}

	datasets := make([]Dataset, 0, len(instance.Classes))
	for _, class := range instance.Classes {
		rows := make([][]string, 0, len(instance.Days))
		for _, day := range instance.Days {
			row := []string{day}
			for _, entry := range schedule[class][day] {
				cell := orDash(entry.Subject)
				if entry.Kind == model.KindStudy && entry.Subject != "" {
					cell += "*"
				}
				row = append(row, cell)
			}
			rows = append(rows, row)
		}
		datasets = append(datasets, Dataset{Title: "Schedule of " + class, Headers: headers, Rows: rows})
	}
	return datasets
}

// WorkloadDataset summarizes each teacher's week
func WorkloadDataset(instance *model.Instance, workloads []model.SubjectWorkload) Dataset {
	headers := append(append([]string{"teacher"}, instance.Days...), "weekly", "study", "windows")
	rows := make([][]string, 0, len(workloads))
	for _, workload := range workloads {
		row := []string{workload.Subject}
		for _, day := range instance.Days {
			row = append(row, strconv.Itoa(workload.Daily[day]))
		}
		row = append(row, strconv.Itoa(workload.Weekly), strconv.Itoa(workload.Study), strconv.Itoa(workload.Windows))
		rows = append(rows, row)
	}
	return Dataset{Title: "Teacher workload", Headers: headers, Rows: rows}
}

// DutiesDataset details, per teacher and day, which classes are served at which positions
func DutiesDataset(instance *model.Instance, workloads []model.SubjectWorkload) Dataset {
	rows := make([][]string, 0, len(workloads)*len(instance.Days))
	for _, workload := range workloads {
		for _, day := range instance.Days {
			duties := lo.Map(workload.Duties[day], func(duty model.Duty, _ int) string {
				if duty.Kind == model.KindStudy {
					return fmt.Sprintf("%v %v", duty.Session, duty.Class)
				}
				ordinal, _ := model.PositionOrdinal(duty.Position)
				return fmt.Sprintf("lesson %d %v", ordinal+1, duty.Class)
			})
			if len(duties) == 0 {
				continue
			}
			rows = append(rows, []string{workload.Subject, day, strings.Join(duties, ", ")})
		}
	}
	return Dataset{Title: "Teacher duties", Headers: []string{"teacher", "day", "duties"}, Rows: rows}
}

// ValidationDataset lists the violations of a report followed by its continuity windows
func ValidationDataset(validation model.Report) Dataset {
	rows := make([][]string, 0, len(validation.Violations)+len(validation.Continuity.Windows))
	for _, violation := range validation.Violations {
		rows = append(rows, []string{"violation", strconv.Itoa(violation.Rule), violation.Message})
	}
	for _, window := range validation.Continuity.Windows {
		message := fmt.Sprintf("%v on %v, positions %d-%d", window.Subject, window.Day, window.Start, window.Start+2)
		if window.Protected {
			message += " (protected)"
		}
		rows = append(rows, []string{"continuity", "", message})
	}

	title := fmt.Sprintf("Validation: %d violations, %d continuity windows (%d protected)",
		len(validation.Violations), validation.Continuity.Total, validation.Continuity.Protected)
	return Dataset{Title: title, Headers: []string{"kind", "rule", "detail"}, Rows: rows}
}

func orDash(subject string) string {
	if subject == "" {
		return "-"
	}
	return subject
}
