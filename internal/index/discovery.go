package index

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cursorhist/internal/transcript"
)

// transcriptsSubdir is the folder inside each encoded project
// directory that holds that project's session transcripts.
const transcriptsSubdir = "agent-transcripts"

// File is one discovered transcript file.
type File struct {
	Path   string // absolute transcript path
	Folder string // encoded project directory name
	Stem   string // file name without extension, the session id
	Format transcript.Format
}

// Discover lists every transcript under projectsDir, one entry per
// session. The layout is <projectsDir>/<encoded>/agent-transcripts/
// <session>.{jsonl,txt}; when both extensions exist for one stem the
// .jsonl wins. Transcript directories that resolve outside the
// projects root through symlinks are dropped. Results are sorted by
// path; a missing or unreadable root yields nil.
func Discover(projectsDir string) []File {
	if projectsDir == "" {
		return nil
	}
	resolvedRoot, err := filepath.EvalSymlinks(projectsDir)
	if err != nil {
		return nil
	}
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil
	}

	var files []File
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		transcriptsDir := filepath.Join(
			projectsDir, entry.Name(), transcriptsSubdir,
		)
		resolvedDir, err := filepath.EvalSymlinks(transcriptsDir)
		if err != nil {
			continue
		}
		if !containedIn(resolvedDir, resolvedRoot) {
			continue
		}
		transcripts, err := os.ReadDir(transcriptsDir)
		if err != nil {
			continue
		}

		// Dedupe by stem: a session converted from .txt to .jsonl
		// keeps only the richer format.
		chosen := make(map[string]string)
		for _, tf := range transcripts {
			if tf.IsDir() {
				continue
			}
			name := tf.Name()
			if transcript.FormatForPath(name) == transcript.FormatUnknown {
				continue
			}
			full := filepath.Join(transcriptsDir, name)
			if !isRegularFile(full) {
				continue
			}
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			if prev, ok := chosen[stem]; ok {
				if strings.HasSuffix(prev, ".txt") &&
					strings.HasSuffix(name, ".jsonl") {
					chosen[stem] = full
				}
				continue
			}
			chosen[stem] = full
		}
		for stem, path := range chosen {
			files = append(files, File{
				Path:   path,
				Folder: entry.Name(),
				Stem:   stem,
				Format: transcript.FormatForPath(path),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// FindTranscript locates the transcript file for a session id by
// probing every project directory, preferring .jsonl over .txt.
// Returns "" when the session is unknown or the id is malformed.
func FindTranscript(projectsDir, sessionID string) string {
	if !IsValidSessionID(sessionID) {
		return ""
	}
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return ""
	}

	for _, ext := range []string{".jsonl", ".txt"} {
		target := sessionID + ext
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			candidate := filepath.Join(
				projectsDir, entry.Name(), transcriptsSubdir, target,
			)
			if isRegularFile(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// IsValidSessionID reports whether id contains only alphanumeric
// characters, dashes, and underscores. Anything else could escape the
// projects tree when joined into a path.
func IsValidSessionID(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// isRegularFile reports whether path is a regular file, not a
// symlink, directory, or special file.
func isRegularFile(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// containedIn reports whether child is strictly under root. Both
// paths must already be canonical.
func containedIn(child, root string) bool {
	rel, err := filepath.Rel(root, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." &&
		!strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
