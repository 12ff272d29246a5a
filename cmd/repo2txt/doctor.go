package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/tokenstore"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

var (
	// Dependencies for testing
	osStat     = os.Stat
	httpClient = &http.Client{Timeout: 5 * time.Second}
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and connectivity",
	Long:  "Verifies that the GitHub API is reachable and that output and state directories are usable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking environment...")
		allPassed := true

		// Check 1: Config file
		fmt.Fprint(out, "  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "WARN (%v)\n", err)
			cfg = config.Default()
		} else {
			fmt.Fprintln(out, "OK")
		}

		// Check 2: GitHub API
		fmt.Fprint(out, "  GitHub API: ")
		if status, err := checkAPI(cfg.GitHub.APIURL); err == nil {
			fmt.Fprintf(out, "OK (%s)\n", status)
		} else {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			allPassed = false
		}

		// Check 3: Write permissions for output dir
		fmt.Fprint(out, "  Write permissions: ")
		if checkWritePermissions(cfg.Output.Directory) {
			fmt.Fprintln(out, "OK")
		} else {
			fmt.Fprintln(out, "FAILED")
			allPassed = false
		}

		// Check 4: State directory
		fmt.Fprint(out, "  State directory: ")
		stateDir := utils.ExpandPath(cfg.State.Directory)
		if checkStateDir(stateDir) {
			fmt.Fprintf(out, "OK (%s)\n", stateDir)
		} else {
			fmt.Fprintln(out, "WARN (will be created on first use)")
		}

		// Check 5: Stored token
		fmt.Fprint(out, "  Stored token: ")
		fmt.Fprintln(out, describeStoredToken(cfg.State.Directory))

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All critical checks passed!")
		} else {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkAPI requests the API root and reports the remaining anonymous quota
func checkAPI(apiURL string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := strings.TrimRight(apiURL, "/") + "/rate_limit"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		return remaining + " requests remaining", nil
	}
	return resp.Status, nil
}

// checkWritePermissions checks if we can write to dir
func checkWritePermissions(dir string) bool {
	tmpFile := filepath.Join(utils.ExpandPath(dir), ".repo2txt_test_write")
	if err := utils.EnsureDir(tmpFile); err != nil {
		return false
	}
	f, err := os.Create(tmpFile)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(tmpFile)
	return true
}

// checkStateDir checks if the state directory exists
func checkStateDir(path string) bool {
	info, err := osStat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// describeStoredToken reports whether a token is stored, masked
func describeStoredToken(dir string) string {
	if !checkStateDir(utils.ExpandPath(dir)) {
		return "none"
	}
	store, err := tokenstore.NewBadgerStore(tokenstore.Options{Directory: dir})
	if err != nil {
		return fmt.Sprintf("WARN (%v)", err)
	}
	defer store.Close()

	token, err := store.Load()
	switch {
	case err != nil:
		return fmt.Sprintf("WARN (%v)", err)
	case token == "":
		return "none"
	}
	return tokenstore.Mask(token)
}
