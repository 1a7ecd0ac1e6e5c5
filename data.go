package lorax

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IssueStatus is the traffic-light state of an issue.
type IssueStatus string

const (
	StatusGo   IssueStatus = "go"
	StatusWait IssueStatus = "wait"
	StatusStop IssueStatus = "stop"
)

// Color returns the dot tint for the status.
func (s IssueStatus) Color() Color {
	switch s {
	case StatusWait:
		return ColorFromHex(0xE8B33B)
	case StatusStop:
		return ColorFromHex(0xD9534F)
	}
	return ColorFromHex(0x5CB85C)
}

// IssueData is the static description of one issue.
type IssueData struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Status IssueStatus `yaml:"status"`
}

// TopicData is the static description of one topic.
type TopicData struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Tagline string      `yaml:"tagline"`
	Decoys  int         `yaml:"decoys"`
	Issues  []IssueData `yaml:"issues"`
}

// URL returns the topic-relative issue path, "topic/issue".
func (t TopicData) URL(issue IssueData) string {
	return t.ID + "/" + issue.ID
}

// Dataset is the root of a topics file.
type Dataset struct {
	Topics []TopicData `yaml:"topics"`
}

// ErrInvalidData is wrapped by every Dataset.Validate failure.
var ErrInvalidData = errors.New("invalid topic data")

// Validate checks identifiers and statuses.
func (d Dataset) Validate() error {
	if len(d.Topics) == 0 {
		return fmt.Errorf("%w: no topics", ErrInvalidData)
	}
	topicIDs := make(map[string]bool, len(d.Topics))
	issueIDs := make(map[string]bool)
	for i, t := range d.Topics {
		if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: topic %d needs an id and a name", ErrInvalidData, i)
		}
		if topicIDs[t.ID] {
			return fmt.Errorf("%w: duplicate topic id %q", ErrInvalidData, t.ID)
		}
		topicIDs[t.ID] = true
		if t.Decoys < 0 {
			return fmt.Errorf("%w: topic %q has negative decoys", ErrInvalidData, t.ID)
		}
		for _, is := range t.Issues {
			if strings.TrimSpace(is.ID) == "" {
				return fmt.Errorf("%w: topic %q has an issue without id", ErrInvalidData, t.ID)
			}
			if issueIDs[is.ID] {
				return fmt.Errorf("%w: issue %q belongs to more than one topic", ErrInvalidData, is.ID)
			}
			issueIDs[is.ID] = true
			switch is.Status {
			case "", StatusGo, StatusWait, StatusStop:
			default:
				return fmt.Errorf("%w: issue %q has unknown status %q", ErrInvalidData, is.ID, is.Status)
			}
		}
	}
	return nil
}

// ParseTopics decodes and validates a YAML topics document.
func ParseTopics(data []byte) (Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Dataset{}, fmt.Errorf("parse topics: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// LoadTopics reads and parses a YAML topics file.
func LoadTopics(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("load topics: %w", err)
	}
	return ParseTopics(data)
}
