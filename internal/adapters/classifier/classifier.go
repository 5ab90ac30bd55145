// Package classifier decides which parts of a command string denote files.
//
// Explicit mode is selected when the command carries at least one marker:
//
//	{i:<path>}  {o:<path>}   braced, path is anything but '{' and '}'
//	i:<path>    o:<path>     unbraced, path stops at whitespace or parentheses
//
// Unbraced markers must start at a token boundary, so "radio:x" is not an
// output. Markers are replaced by their bare paths to form the command that
// actually runs.
//
// Implicit mode is a heuristic. Shell syntax characters are stripped, the
// command is split on whitespace and every token naming an existing regular
// file below the workspace is taken as an input. It does not understand shell
// grammar, which gives two known failure modes:
//
//   - false positives: numeric or flag arguments that happen to match an
//     existing file name (`head -n 10` next to a file called "10") become inputs;
//   - false negatives: paths built by the shell (globs, variables, command
//     substitution output), directories and paths outside the workspace are
//     never inputs.
package classifier

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
)

// markerPattern matches braced markers anywhere and unbraced markers at a token boundary.
//
// Submatches: 1 role and 2 path of a braced marker; 3 role and 4 path of an
// unbraced one.
var markerPattern = regexp.MustCompile(`\{([io]):([^{}]+)\}|(?:^|[^\w])([io]):([^\s()]+)`)

// shellSyntax is removed from commands before implicit tokenisation.
var shellSyntax = strings.NewReplacer("$", " ", "(", " ", ")", " ", "[", " ", "]", " ", "'", " ", `"`, " ")

// Classifier implements ports.PathClassifier.
type Classifier struct {
	store ports.AuditStore
}

// New creates a Classifier that looks up sibling records in store.
func New(store ports.AuditStore) *Classifier {
	return &Classifier{store: store}
}

// Classify inspects command relative to root.
func (c *Classifier) Classify(ctx context.Context, root, command string) (*domain.Classification, error) {
	if strings.TrimSpace(command) == "" {
		return nil, domain.ErrNoCommand
	}

	placeholders := FindPlaceholders(command)
	if len(placeholders) > 0 {
		return classifyExplicit(command, placeholders)
	}
	return c.classifyImplicit(ctx, root, command)
}

// FindPlaceholders returns every marker in command, in order of appearance.
func FindPlaceholders(command string) []domain.Placeholder {
	matches := markerPattern.FindAllStringSubmatchIndex(command, -1)
	placeholders := make([]domain.Placeholder, 0, len(matches))
	for _, m := range matches {
		start, end, roleAt, pathStart, pathEnd := markerSpan(m)

		role := domain.RoleInput
		if command[roleAt] == 'o' {
			role = domain.RoleOutput
		}
		placeholders = append(placeholders, domain.Placeholder{
			Text: command[start:end],
			Path: command[pathStart:pathEnd],
			Role: role,
		})
	}
	return placeholders
}

// Resolve replaces every marker in command with its bare path.
func Resolve(command string) string {
	var b strings.Builder
	last := 0
	for _, m := range markerPattern.FindAllStringSubmatchIndex(command, -1) {
		start, end, _, pathStart, pathEnd := markerSpan(m)
		b.WriteString(command[last:start])
		b.WriteString(command[pathStart:pathEnd])
		last = end
	}
	b.WriteString(command[last:])
	return b.String()
}

// markerSpan extracts the marker bounds from a match, excluding the boundary
// character consumed before an unbraced marker.
func markerSpan(m []int) (start, end, roleAt, pathStart, pathEnd int) {
	if m[2] >= 0 {
		return m[0], m[1], m[2], m[4], m[5]
	}
	return m[6], m[1], m[6], m[8], m[9]
}

func classifyExplicit(command string, placeholders []domain.Placeholder) (*domain.Classification, error) {
	var inputs, outputs []domain.FileReference
	for _, p := range placeholders {
		ref := domain.NewFileReference(normalizeURL(p.Path))
		switch p.Role {
		case domain.RoleInput:
			inputs = appendUnique(inputs, ref)
		case domain.RoleOutput:
			outputs = appendUnique(outputs, ref)
		}
	}

	for _, out := range outputs {
		if slices.ContainsFunc(inputs, func(in domain.FileReference) bool { return in.URL == out.URL }) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInputOutputOverlap, "marked both i: and o:"), "url", out.URL)
		}
	}

	return &domain.Classification{
		Mode:         domain.ModeExplicit,
		Invocation:   domain.NewCommandInvocation(command, Resolve(command)),
		Inputs:       nonNil(inputs),
		Outputs:      nonNil(outputs),
		Placeholders: placeholders,
	}, nil
}

func (c *Classifier) classifyImplicit(ctx context.Context, root, command string) (*domain.Classification, error) {
	result := &domain.Classification{
		Mode:       domain.ModeImplicit,
		Invocation: domain.NewCommandInvocation(command, ""),
		Inputs:     []domain.FileReference{},
		Outputs:    []domain.FileReference{},
	}

	for _, token := range Tokenize(command) {
		url, ok := candidateURL(root, token)
		if !ok {
			continue
		}

		record, err := c.store.Lookup(ctx, root, url)
		if err != nil {
			return nil, err
		}
		if record != nil && record.CommandString() == command {
			result.Skip = &domain.SkipReason{
				Path:      url,
				AuditPath: domain.AuditPathFor(domain.ResolveURL(root, url)),
				Reason:    "already produced by this command",
			}
			return result, nil
		}

		result.Inputs = appendUnique(result.Inputs, domain.NewFileReference(url))
	}

	return result, nil
}

// Tokenize strips shell syntax characters and splits command into an ordered set of tokens.
func Tokenize(command string) []string {
	fields := strings.Fields(shellSyntax.Replace(command))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !slices.Contains(tokens, f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// candidateURL reports whether token names an existing regular file inside root
// and returns its url.
func candidateURL(root, token string) (string, bool) {
	if filepath.IsAbs(token) || domain.IsBookkeepingPath(token) {
		return "", false
	}
	url := normalizeURL(token)
	if url == "." || url == ".." || strings.HasPrefix(url, "../") {
		return "", false
	}

	info, err := os.Stat(domain.ResolveURL(root, url))
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return url, true
}

// normalizeURL cleans relative paths into slash form; absolute paths are only cleaned.
func normalizeURL(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

func appendUnique(refs []domain.FileReference, ref domain.FileReference) []domain.FileReference {
	if slices.ContainsFunc(refs, func(r domain.FileReference) bool { return r.URL == ref.URL }) {
		return refs
	}
	return append(refs, ref)
}

func nonNil(refs []domain.FileReference) []domain.FileReference {
	if refs == nil {
		return []domain.FileReference{}
	}
	return refs
}
