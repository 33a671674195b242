package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DataDirResolver finds the chunked dictionary data directory across a
// handful of conventional locations, so the server can start with a bare
// "-data" flag pointing at a relative path from any working directory.
type DataDirResolver struct {
	executableDir string
}

// NewDataDirResolver locates the running executable so candidate paths can
// be resolved relative to it rather than only the current working directory.
func NewDataDirResolver() (*DataDirResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	return &DataDirResolver{executableDir: filepath.Dir(execPath)}, nil
}

// GetDataDir resolves the data directory containing chunked dict_*.bin
// files. It tries, in order: an absolute user-specified path, the
// user-specified path relative to the executable, the same path relative to
// the working directory, and a few conventional fallback locations. It
// returns the first candidate that actually contains chunk files, or the
// executable-relative candidate if nothing qualifies.
func (r *DataDirResolver) GetDataDir(userSpecifiedPath string) string {
	candidates := r.getDataDirCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if r.isValidDataDir(path) {
			log.Debugf("resolved data dir: %s", path)
			return path
		}
	}
	return filepath.Join(r.executableDir, userSpecifiedPath)
}

// isValidDataDir reports whether path exists and holds at least one
// dict_*.bin chunk file.
func (r *DataDirResolver) isValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	return len(r.listBinFiles(path)) > 0
}

func (r *DataDirResolver) listBinFiles(path string) []string {
	matches, err := filepath.Glob(filepath.Join(path, "dict_*.bin"))
	if err != nil {
		return nil
	}
	return matches
}

func (r *DataDirResolver) getDataDirCandidates(userSpecifiedPath string) []string {
	var candidates []string

	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	candidates = append(candidates, filepath.Join(r.executableDir, userSpecifiedPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	candidates = append(candidates,
		filepath.Join(r.executableDir, "data"),
		filepath.Join(filepath.Dir(r.executableDir), "data"),
	)
	return candidates
}

// DiagnoseDataDir reports, for each candidate location, whether it exists
// and which chunk files it holds. Intended for -d debug output when the
// server starts with an empty dictionary.
func (r *DataDirResolver) DiagnoseDataDir(userSpecifiedPath string) map[string]any {
	candidates := r.getDataDirCandidates(userSpecifiedPath)
	tested := make([]map[string]any, 0, len(candidates))
	for _, candidate := range candidates {
		tested = append(tested, map[string]any{
			"path":  candidate,
			"valid": r.isValidDataDir(candidate),
			"files": r.listBinFiles(candidate),
		})
	}
	return map[string]any{
		"requested":  userSpecifiedPath,
		"resolved":   r.GetDataDir(userSpecifiedPath),
		"candidates": tested,
	}
}
