package installer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/guangzhiyao/myzsh/internal/config"
	"github.com/guangzhiyao/myzsh/internal/logger"
	"github.com/guangzhiyao/myzsh/internal/system"
)

// githubRelease mirrors the fields we need from the GitHub release API.
type githubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// FontInstaller fetches a font release asset from GitHub and installs the
// font files it contains into the user's font directory.
type FontInstaller struct {
	exec    system.Executor
	opts    config.Options
	apiBase string
}

func NewFontInstaller(x system.Executor, opts config.Options) *FontInstaller {
	return &FontInstaller{exec: x, opts: opts, apiBase: "https://api.github.com"}
}

// Install resolves the configured release, downloads the asset into the
// staging dir, extracts it and copies every font file into spec.Dir.
func (f *FontInstaller) Install(spec config.FontSpec, staging string) error {
	if f.opts.DryRun {
		logger.Info("[DRY-RUN] would install font %s from %s@%s (asset %s) into %s\n",
			spec.Name, spec.Repo, spec.Tag, spec.Asset, spec.Dir)
		return nil
	}

	assetURL, err := f.resolveAsset(spec)
	if err != nil {
		return err
	}

	archive := filepath.Join(staging, spec.Asset)
	logger.Info("[INFO] Downloading %s...\n", spec.Asset)
	if err := downloadFile(assetURL, archive); err != nil {
		return err
	}

	extractDir := filepath.Join(staging, "font-"+spec.Name)
	if err := os.MkdirAll(extractDir, 0755); err != nil {
		return fmt.Errorf("create extraction dir: %w", err)
	}
	if err := extractArchive(archive, extractDir); err != nil {
		return fmt.Errorf("extract %s: %w", spec.Asset, err)
	}

	installed, err := f.copyFonts(extractDir, spec.Dir)
	if err != nil {
		return err
	}
	if installed == 0 {
		return fmt.Errorf("no font files found in %s", spec.Asset)
	}
	logger.Info("[INFO] Installed %d font files into %s\n", installed, spec.Dir)

	f.refreshCache()
	return nil
}

// resolveAsset looks up the release on the GitHub API and returns the
// download URL of the configured asset.
func (f *FontInstaller) resolveAsset(spec config.FontSpec) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/tags/%s", f.apiBase, spec.Repo, spec.Tag)
	logger.Debug("[DEBUG] Fetching GitHub release from URL: %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: fetch release %s@%s: %v", ErrNetworkFailure, spec.Repo, spec.Tag, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: release fetch for %s@%s: HTTP status %d", ErrNetworkFailure, spec.Repo, spec.Tag, resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release JSON for %s@%s: %w", spec.Repo, spec.Tag, err)
	}
	logger.Debug("[DEBUG] Release tag %s with %d assets\n", release.TagName, len(release.Assets))

	for _, asset := range release.Assets {
		if asset.Name == spec.Asset {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("asset %s not found in release %s@%s", spec.Asset, spec.Repo, spec.Tag)
}

// copyFonts walks the extraction dir and copies every .ttf/.otf file
// into dir, flattening any archive-internal layout.
func (f *FontInstaller) copyFonts(root, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create font dir %s: %w", dir, err)
	}

	installed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		if err := copyFile(path, filepath.Join(dir, d.Name())); err != nil {
			return fmt.Errorf("install %s: %w", d.Name(), err)
		}
		logger.Debug("[DEBUG] Installed font file %s\n", d.Name())
		installed++
		return nil
	})
	return installed, err
}

// refreshCache asks fontconfig to pick up the new files, best effort.
func (f *FontInstaller) refreshCache() {
	if _, err := f.exec.LookPath("fc-cache"); err != nil {
		logger.Debug("[DEBUG] fc-cache not found, skipping font cache refresh\n")
		return
	}
	if out, err := f.exec.CombinedOutput(exec.Command("fc-cache", "-f")); err != nil {
		logger.Warn("[WARN] fc-cache failed: %v\nOutput: %s\n", err, out)
	}
}
