// Package session holds the state of one interactive analysis run.
package session

import (
	"time"

	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/smarthire"
)

const previewLength = 100

// Entry is one analysis kept in the session history.
type Entry struct {
	Timestamp     time.Time         `json:"timestamp" yaml:"timestamp"`
	File          string            `json:"file,omitempty" yaml:"file,omitempty"`
	Result        *smarthire.Result `json:"result" yaml:"result"`
	ResumePreview string            `json:"resume_preview" yaml:"resume_preview"`
}

// Session replaces process-wide state: the selected file, the current analysis and
// the history are owned here and passed to handlers explicitly.
type Session struct {
	CurrentFile string
	Current     *smarthire.Result
	History     []Entry

	now func() time.Time
}

func New() *Session {
	return &Session{now: time.Now}
}

// Record stores a finished analysis of file as current and prepends it to the
// history. The file and the result always change together; file is empty for
// text that did not come from a file.
func (s *Session) Record(result *smarthire.Result, file, resumeText string) {
	s.CurrentFile = file
	s.Current = result
	s.History = append([]Entry{{
		Timestamp:     s.now(),
		File:          file,
		Result:        result,
		ResumePreview: preview(resumeText),
	}}, s.History...)
}

// CandidateName is derived from the file of the current analysis.
func (s *Session) CandidateName() string {
	return analysis.CandidateName(s.CurrentFile)
}

// TotalCandidates is the number of analyses run in this session.
func (s *Session) TotalCandidates() int {
	return len(s.History)
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}
