package research

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultDeepEndpoint = "https://api.parallel.ai"

// Finding is the outcome of researching one question. Err is set when
// the task failed or timed out; a failed finding never sinks the batch.
type Finding struct {
	Question  string
	Content   string
	Citations []string
	Err       error
}

// DeepClient drives a task-based deep research API: submit a task,
// poll until it reaches a terminal state, fetch the result.
type DeepClient struct {
	apiKey       string
	endpoint     string
	processor    string
	pollInterval time.Duration
	timeout      time.Duration
	httpClient   *http.Client
}

type DeepOptions struct {
	Processor    string
	PollInterval time.Duration
	Timeout      time.Duration
}

func NewDeepClient(apiKey string, opts DeepOptions) *DeepClient {
	if opts.Processor == "" {
		opts.Processor = "base"
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Minute
	}
	return &DeepClient{
		apiKey:       apiKey,
		endpoint:     defaultDeepEndpoint,
		processor:    opts.Processor,
		pollInterval: opts.PollInterval,
		timeout:      opts.Timeout,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Research runs one question through the task lifecycle.
func (c *DeepClient) Research(question string) Finding {
	finding := Finding{Question: question}

	runID, err := c.createRun(question)
	if err != nil {
		finding.Err = fmt.Errorf("create run: %w", err)
		return finding
	}

	deadline := time.Now().Add(c.timeout)
	for {
		status, err := c.runStatus(runID)
		if err != nil {
			finding.Err = fmt.Errorf("poll run %s: %w", runID, err)
			return finding
		}

		if status == "completed" {
			break
		}
		if status == "failed" || status == "cancelled" {
			finding.Err = fmt.Errorf("run %s ended with status %s", runID, status)
			return finding
		}
		if time.Now().After(deadline) {
			finding.Err = fmt.Errorf("run %s timed out after %s", runID, c.timeout)
			return finding
		}

		time.Sleep(c.pollInterval)
	}

	content, citations, err := c.runResult(runID)
	if err != nil {
		finding.Err = fmt.Errorf("fetch result %s: %w", runID, err)
		return finding
	}

	finding.Content = content
	finding.Citations = citations
	return finding
}

func (c *DeepClient) createRun(question string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"input":     question,
		"processor": c.processor,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		RunID string `json:"run_id"`
	}
	if err := c.do(http.MethodPost, "/v1/tasks/runs", body, &resp); err != nil {
		return "", err
	}
	if resp.RunID == "" {
		return "", fmt.Errorf("empty run_id in response")
	}
	return resp.RunID, nil
}

func (c *DeepClient) runStatus(runID string) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(http.MethodGet, "/v1/tasks/runs/"+runID, nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *DeepClient) runResult(runID string) (string, []string, error) {
	var resp struct {
		Output struct {
			Content string `json:"content"`
			Basis   []struct {
				Citations []struct {
					URL string `json:"url"`
				} `json:"citations"`
			} `json:"basis"`
		} `json:"output"`
	}
	if err := c.do(http.MethodGet, "/v1/tasks/runs/"+runID+"/result", nil, &resp); err != nil {
		return "", nil, err
	}

	var citations []string
	for _, basis := range resp.Output.Basis {
		for _, citation := range basis.Citations {
			if citation.URL != "" {
				citations = append(citations, citation.URL)
			}
		}
	}
	return resp.Output.Content, citations, nil
}

func (c *DeepClient) do(method, path string, body []byte, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.endpoint+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
