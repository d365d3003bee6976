package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/limaJavier/selfstudy/pkg/model"
)

const defaultExecutablePath = "../../bin/selfstudy"

type ResultType int

const (
	solved ResultType = iota
	infeasible
	timeout
)

var resultTypes = map[ResultType]string{
	solved:     "solved",
	infeasible: "infeasible",
	timeout:    "timeout",
}

type PlanMetadata struct {
	Name string
	// Fixed lessons of managed subjects across every class and day
	ManagedLessons int
	// Consecutive positions a managed subject's teacher already fills with fixed lessons
	Pairs int
}

type SchedulerMetadata struct {
	Solver   string
	Precheck bool
}

type BenchmarkResult struct {
	Scheduler     SchedulerMetadata
	Plan          PlanMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Objective     int
	Result        ResultType
}

func main() {
	executablePtr := flag.String("bin", defaultExecutablePath, "Path to the selfstudy executable")
	directoryPtr := flag.String("plans", "../../pkg/model/testdata/", "Directory with the fixed-lesson JSON files to benchmark")
	timeLimitPtr := flag.String("time-limit", "5m", "Solver time budget of every run")
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file with the results")
	flag.Parse()

	plans := getPlans(*directoryPtr)
	schedulers := getSchedulers()
	results := make([]BenchmarkResult, 0, len(plans)*len(schedulers))

	for _, plan := range plans {
		for _, scheduler := range schedulers {
			fmt.Printf("Benchmarking plan \"%v\" with solver \"%v\" and precheck \"%v\"\n", plan.Name, scheduler.Solver, scheduler.Precheck)

			duration, maxMemory, cpuPercentage, objective, result := measure(*executablePtr, scheduler, *timeLimitPtr, plan.Name)

			results = append(results, BenchmarkResult{
				Scheduler:     scheduler,
				Plan:          plan,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Objective:     objective,
				Result:        result,
			})
		}
	}

	toCsv(*outPtr, results)
}

func getPlans(directory string) []PlanMetadata {
	instance := model.DefaultInstance()
	files, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	plans := make([]PlanMetadata, 0)
	for _, file := range files {
		filename := filepath.Join(directory, file.Name())
		plan, err := model.PlanFromJson(instance, filename)
		if err != nil {
			// Study schedules and other documents share the directory
			continue
		}
		managed, pairs := describe(instance, plan)
		plans = append(plans, PlanMetadata{Name: filename, ManagedLessons: managed, Pairs: pairs})
	}
	return plans
}

func describe(instance *model.Instance, plan model.FixedLessonPlan) (managed int, pairs int) {
	present := make(map[string]map[string]map[int]bool)
	for _, slot := range plan.Slots(instance) {
		if !instance.Manages(slot.Subject) {
			continue
		}
		managed++
		if present[slot.Day] == nil {
			present[slot.Day] = make(map[string]map[int]bool)
		}
		if present[slot.Day][slot.Subject] == nil {
			present[slot.Day][slot.Subject] = make(map[int]bool)
		}
		present[slot.Day][slot.Subject][model.FixedPosition(slot.Ordinal)] = true
	}

	for _, subjects := range present {
		for _, positions := range subjects {
			for position := range positions {
				if positions[position+1] {
					pairs++
				}
			}
		}
	}
	return managed, pairs
}

func getSchedulers() []SchedulerMetadata {
	schedulers := make([]SchedulerMetadata, 0)
	for _, solver := range []string{"gophersat", "cbc"} {
		if solver == "cbc" {
			if _, err := exec.LookPath("cbc"); err != nil {
				continue
			}
		}
		for _, precheck := range []bool{true, false} {
			schedulers = append(schedulers, SchedulerMetadata{Solver: solver, Precheck: precheck})
		}
	}
	return schedulers
}

func measure(executable string, scheduler SchedulerMetadata, timeLimit string, planFile string) (duration int64, maxMemory float32, cpuPercentage int64, objective int, result ResultType) {
	args := []string{"-v", executable, "solve", "--file", planFile, "--out", os.DevNull, "--solver", scheduler.Solver, "--time-limit", timeLimit, "--store", "none"}
	if !scheduler.Precheck {
		args = append(args, "--no-precheck")
	}
	cmd := exec.Command("/usr/bin/time", args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution of \"selfstudy\" at plan \"%v\" using solver \"%v\": %v\n", planFile, scheduler.Solver, stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 && strings.Contains(stdErr.String(), "time-limit") {
		result = timeout
	} else if cmd.ProcessState.ExitCode() == 20 {
		result = infeasible
	} else {
		result = solved
		objective = parseObjective(stdOut.String())
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, objective, result
}

func toCsv(out string, results []BenchmarkResult) {
	file, err := os.Create(out)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Solver", "Precheck", "Plan", "ManagedLessons", "Pairs", "Duration(ms)", "Memory(MB)", "CPU(%)", "Objective", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Scheduler.Solver,
			fmt.Sprintf("%v", result.Scheduler.Precheck),
			result.Plan.Name,
			fmt.Sprintf("%d", result.Plan.ManagedLessons),
			fmt.Sprintf("%d", result.Plan.Pairs),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			fmt.Sprintf("%d", result.Objective),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseObjective(output string) int {
	for _, line := range strings.Split(output, "\n") {
		if value, ok := strings.CutPrefix(line, "Objective: "); ok {
			return lo.Must(strconv.Atoi(strings.TrimSpace(value)))
		}
	}
	log.Fatalf("objective not found in output: %v", output)
	return 0
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / 1024
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
