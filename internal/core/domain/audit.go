package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// FileReference identifies a logical input or output of an invocation.
type FileReference struct {
	// URL is the stable identity used to match files across records.
	URL string `json:"url"`
	// Path is reserved for references that need resolution beyond URL.
	Path *string `json:"path"`
}

// NewFileReference returns a reference for a local relative path.
func NewFileReference(url string) FileReference {
	return FileReference{URL: url}
}

// ExecutorSpec describes how a command was executed.
type ExecutorSpec struct {
	// Image is reserved for container execution and is null for local shells.
	Image   *string  `json:"image"`
	Command []string `json:"command"`
}

// Tags carries the timing of an invocation.
type Tags struct {
	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`
	Duration  string    `json:"duration"`
	DurationS float64   `json:"duration_s"`
}

// NewTags builds timing tags from wall-clock start and end instants.
func NewTags(start, end time.Time) Tags {
	s := NewTimestamp(start)
	e := NewTimestamp(end)
	d := e.Sub(s.Time)
	return Tags{
		StartTime: s,
		EndTime:   e,
		Duration:  FormatDuration(d),
		DurationS: d.Seconds(),
	}
}

// AuditRecord is the persisted provenance of one produced file.
// Every output of an invocation carries an identical copy.
type AuditRecord struct {
	Inputs    []FileReference        `json:"inputs"`
	Outputs   []FileReference        `json:"outputs"`
	Executors []ExecutorSpec         `json:"executors"`
	Tags      Tags                   `json:"tags"`
	Upstream  map[string]AuditRecord `json:"upstream"`
}

// NewAuditRecord assembles a record for a finished invocation.
func NewAuditRecord(inv CommandInvocation, inputs, outputs []FileReference, tags Tags) AuditRecord {
	rec := AuditRecord{
		Inputs:    slices.Clone(inputs),
		Outputs:   slices.Clone(outputs),
		Executors: []ExecutorSpec{{Command: inv.Tokens()}},
		Tags:      tags,
		Upstream:  make(map[string]AuditRecord),
	}
	rec.Normalize()
	return rec
}

// Normalize replaces nil collections with empty ones so they serialise as [] and {}.
func (r *AuditRecord) Normalize() {
	if r.Inputs == nil {
		r.Inputs = []FileReference{}
	}
	if r.Outputs == nil {
		r.Outputs = []FileReference{}
	}
	if r.Executors == nil {
		r.Executors = []ExecutorSpec{}
	}
	for i := range r.Executors {
		if r.Executors[i].Command == nil {
			r.Executors[i].Command = []string{}
		}
	}
	if r.Upstream == nil {
		r.Upstream = make(map[string]AuditRecord)
	}
	for url, up := range r.Upstream {
		up.Normalize()
		r.Upstream[url] = up
	}
}

// Command returns the command tokens of the first executor.
func (r *AuditRecord) Command() []string {
	if len(r.Executors) == 0 {
		return nil
	}
	return r.Executors[0].Command
}

// CommandString joins the command tokens with single spaces.
func (r *AuditRecord) CommandString() string {
	return strings.Join(r.Command(), " ")
}

// HasInput reports whether url is among the record's inputs.
func (r *AuditRecord) HasInput(url string) bool {
	return slices.ContainsFunc(r.Inputs, func(f FileReference) bool { return f.URL == url })
}

// HasOutput reports whether url is among the record's outputs.
func (r *AuditRecord) HasOutput(url string) bool {
	return slices.ContainsFunc(r.Outputs, func(f FileReference) bool { return f.URL == url })
}

// Validate checks the structural invariants of a record.
func (r *AuditRecord) Validate() error {
	if len(r.Executors) == 0 || len(r.Command()) == 0 {
		return zerr.Wrap(ErrMalformedAuditFile, "record has no executor command")
	}
	if len(r.Outputs) == 0 {
		return zerr.Wrap(ErrMalformedAuditFile, "record has no outputs")
	}
	for _, ref := range slices.Concat(r.Inputs, r.Outputs) {
		if ref.URL == "" {
			return zerr.Wrap(ErrMalformedAuditFile, "file reference without url")
		}
	}
	for _, out := range r.Outputs {
		if r.HasInput(out.URL) {
			return zerr.With(zerr.Wrap(ErrInputOutputOverlap, "record consumes its own output"), "url", out.URL)
		}
	}
	return nil
}

// SameCommand reports whether two records ran the identical token sequence.
func (r *AuditRecord) SameCommand(other *AuditRecord) bool {
	return slices.Equal(r.Command(), other.Command())
}
