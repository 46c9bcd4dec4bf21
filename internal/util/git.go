package util

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitInfo contains git repository information
type GitInfo struct {
	RootPath      string
	HeadCommitSHA string
	ModifiedFiles map[string]bool // Absolute paths changed against HEAD, plus untracked files
	IsGitRepo     bool
}

// GetGitInfo retrieves git information for a repository path. A path that is
// not inside a git work tree yields IsGitRepo == false and no error.
func GetGitInfo(ctx context.Context, repoPath string) (*GitInfo, error) {
	info := &GitInfo{
		ModifiedFiles: make(map[string]bool),
	}

	// Check if this is a git repository
	output, err := runGit(ctx, repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		info.IsGitRepo = false
		return info, nil
	}
	info.IsGitRepo = true
	info.RootPath = strings.TrimSpace(output)

	// Get HEAD commit SHA
	output, err = runGit(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD commit SHA: %w", err)
	}
	info.HeadCommitSHA = strings.TrimSpace(output)

	// Modified, added and deleted files in the working directory and index.
	// Paths are relative to the repository root.
	output, err = runGit(ctx, repoPath, "diff", "--name-only", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to get modified files: %w", err)
	}
	info.addFiles(output)

	// Untracked files are new code too
	output, err = runGit(ctx, repoPath, "ls-files", "--others", "--exclude-standard", "--full-name")
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}
	info.addFiles(output)

	return info, nil
}

func (info *GitInfo) addFiles(output string) {
	for _, file := range strings.Split(strings.TrimSpace(output), "\n") {
		if file != "" {
			info.ModifiedFiles[filepath.Join(info.RootPath, filepath.FromSlash(file))] = true
		}
	}
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// IsFileModified checks if a file is modified compared to HEAD. Outside a
// git repository every file counts as modified.
func IsFileModified(gitInfo *GitInfo, filePath string) bool {
	if gitInfo == nil || !gitInfo.IsGitRepo {
		return true
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return true
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}
	return gitInfo.ModifiedFiles[absPath]
}
