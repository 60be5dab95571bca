package opt

import "sync"

// In-process registry of run metrics, keyed by run id. Surfaced through
// the admin API; nothing here outlives the process.

var (
	mu     sync.Mutex
	byRun  = map[string]Metrics{}
	runIDs []string
)

const maxKeptRuns = 256

func RecordMetrics(runID string, m Metrics) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := byRun[runID]; !ok {
		runIDs = append(runIDs, runID)
		if len(runIDs) > maxKeptRuns {
			delete(byRun, runIDs[0])
			runIDs = runIDs[1:]
		}
	}
	byRun[runID] = m
}

func GetMetrics(runID string) (Metrics, bool) {
	mu.Lock()
	defer mu.Unlock()
	m, ok := byRun[runID]
	return m, ok
}

// ListMetrics returns a copy of the retained runs.
func ListMetrics() map[string]Metrics {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Metrics, len(byRun))
	for k, v := range byRun {
		out[k] = v
	}
	return out
}
