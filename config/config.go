package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Scene names understood by the renderer.
const (
	SceneGradient = "gradient"
	SceneDaylight = "daylight"
)

const (
	DefaultWidth  = 256
	DefaultHeight = 256
)

var (
	ErrUnknownScene    = errors.New("config: unknown scene")
	ErrDuplicateOutput = errors.New("config: output path used by more than one job")
)

// Job describes one image to render.
type Job struct {
	Name   string `json:"name"`
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Out    string `json:"out"`

	// Daylight scene only.
	Time  string `json:"time"`  // RFC3339, empty means now
	Day   string `json:"day"`   // optional day texture path
	Night string `json:"night"` // optional night texture path
}

// LoadJobs reads a JSON array of jobs and resolves their defaults.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	outputs := make(map[string]string, len(jobs))
	for i := range jobs {
		jobs[i].Resolve(i)
		if err := jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("config: job %d (%s): %w", i, jobs[i].Name, err)
		}
		if prev, ok := outputs[jobs[i].Out]; ok {
			return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateOutput, jobs[i].Out, prev, jobs[i].Name)
		}
		outputs[jobs[i].Out] = jobs[i].Name
	}
	return jobs, nil
}

// Resolve fills in any empty fields. index names unnamed jobs.
func (j *Job) Resolve(index int) {
	if j.Scene == "" {
		j.Scene = SceneGradient
	}
	if j.Name == "" {
		j.Name = fmt.Sprintf("%s-%d", j.Scene, index)
	}
	if j.Width == 0 {
		j.Width = DefaultWidth
	}
	if j.Height == 0 {
		j.Height = DefaultHeight
	}
	if j.Out == "" {
		j.Out = j.Name + ".ppm"
	}
}

func (j Job) Validate() error {
	if j.Width <= 0 || j.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", j.Width, j.Height)
	}
	switch j.Scene {
	case SceneGradient, SceneDaylight:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScene, j.Scene)
	}
	if _, err := ParseTime(j.Time); err != nil {
		return err
	}
	return nil
}

// ParseTime parses an RFC3339 timestamp; the empty string means now.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: invalid time format: %w", err)
	}
	return t, nil
}
