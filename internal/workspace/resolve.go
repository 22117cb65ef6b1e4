// Package workspace reconstructs original workspace paths from the
// encoded directory names the Cursor Agent CLI writes under its
// projects folder. Cursor replaces both path separators and literal
// dots with '-', e.g. /Users/jane.doe/projects/my-api becomes
// Users-jane-doe-projects-my-api, so decoding has to try every
// reading of each dash and let the filesystem arbitrate.
package workspace

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// reservedRootPrefix marks system paths that are always encoded with
// plain separator substitution, never literal dashes or dots.
const reservedRootPrefix = "var-"

// ExistsFunc reports whether an absolute path exists on disk.
type ExistsFunc func(path string) bool

func osExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Resolver decodes encoded project directory names against an
// existence oracle. Oracle answers are memoized for the lifetime of
// the Resolver; the memo is guarded by a mutex so one Resolver may
// be shared across goroutines.
type Resolver struct {
	exists ExistsFunc

	mu   sync.Mutex
	memo map[string]bool
}

// NewResolver returns a Resolver backed by the given oracle. A nil
// oracle falls back to os.Stat.
func NewResolver(exists ExistsFunc) *Resolver {
	if exists == nil {
		exists = osExists
	}
	return &Resolver{
		exists: exists,
		memo:   make(map[string]bool),
	}
}

// Reset drops every memoized existence answer. Independent decode
// runs (and tests) call this so earlier answers cannot leak in.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.memo = make(map[string]bool)
	r.mu.Unlock()
}

func (r *Resolver) pathExists(path string) bool {
	r.mu.Lock()
	ok, hit := r.memo[path]
	r.mu.Unlock()
	if hit {
		return ok
	}
	ok = r.exists(path)
	r.mu.Lock()
	r.memo[path] = ok
	r.mu.Unlock()
	return ok
}

// Decode reconstructs the original filesystem path for an encoded
// folder name. It never fails: when nothing matches on disk it still
// returns a deterministic best-effort reading rooted at "/".
func (r *Resolver) Decode(name string) string {
	if strings.HasPrefix(name, reservedRootPrefix) {
		return "/" + strings.ReplaceAll(name, "-", "/")
	}

	parts := strings.Split(name, "-")
	if len(parts) == 1 {
		return "/" + name
	}

	if drive, ok := r.drivePrefix(parts); ok {
		return r.solve(parts, 2, parts[1], drive)
	}
	return r.solve(parts, 1, parts[0], "")
}

// drivePrefix detects a Windows-style single-letter drive segment
// (Git Bash encodes C:\Users\... as c-Users-...). The drive is
// accepted on Windows unconditionally, elsewhere only when the
// oracle confirms either "X:/" or the MSYS-style "/x" mount.
func (r *Resolver) drivePrefix(parts []string) (string, bool) {
	if len(parts) < 2 || len(parts[0]) != 1 || !isAlpha(parts[0][0]) {
		return "", false
	}
	drive := strings.ToUpper(parts[0]) + ":/"
	if runtime.GOOS == "windows" ||
		r.pathExists(drive) || r.pathExists("/"+parts[0]) {
		return drive, true
	}
	return "", false
}

// solve assigns one of '-', '.', '/' to the boundary before
// parts[idx] and recurses on the rest. segment accumulates the path
// component under construction; prefix is the closed portion of the
// path and is either empty or ends with a separator.
//
// The '/' reading is only explored when the closed prefix plus the
// current segment exists — the single pruning signal that keeps the
// 3-way branching tractable. Among the completed readings, any whose
// full path exists wins, checked in slash, dot, dash order; with no
// on-disk confirmation the same order decides, which makes Decode a
// pure function of its input when the oracle answers false
// throughout.
func (r *Resolver) solve(
	parts []string, idx int, segment, prefix string,
) string {
	if idx == len(parts) {
		return joinSegment(prefix, segment)
	}

	part := parts[idx]
	dash := r.solve(parts, idx+1, segment+"-"+part, prefix)
	dot := r.solve(parts, idx+1, segment+"."+part, prefix)

	candidate := joinSegment(prefix, segment)
	var slash string
	if r.pathExists(candidate) {
		slash = r.solve(parts, idx+1, part, candidate+"/")
	}

	for _, res := range []string{slash, dot, dash} {
		if res != "" && r.pathExists(res) {
			return res
		}
	}
	if slash != "" {
		return slash
	}
	// dot is never empty, so the dash reading only wins via the
	// existence loop above.
	return dot
}

func joinSegment(prefix, segment string) string {
	if prefix == "" {
		return "/" + segment
	}
	return prefix + segment
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
