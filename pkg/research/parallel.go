package research

import "sync"

// Researcher runs one question to completion.
type Researcher interface {
	Research(question string) Finding
}

// Runner fans research questions out over a bounded number of
// concurrent workers. Findings come back in question order; a failed
// question is recorded in its Finding and never blocks the others.
type Runner struct {
	researcher Researcher
	maxWorkers int
}

func NewRunner(researcher Researcher, maxWorkers int) *Runner {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	return &Runner{researcher: researcher, maxWorkers: maxWorkers}
}

func (r *Runner) ResearchAll(questions []string) []Finding {
	findings := make([]Finding, len(questions))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := r.maxWorkers
	if workers > len(questions) {
		workers = len(questions)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				findings[i] = r.researcher.Research(questions[i])
			}
		}()
	}

	for i := range questions {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return findings
}
