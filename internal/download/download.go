// Package download fetches model and dataset snapshots from the Hugging Face
// hub into local folders for the pipeline to consume.
package download

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
)

const defaultHubURL = "https://huggingface.co"

// Client talks to the Hugging Face hub API.
type Client struct {
	rest *resty.Client
}

// NewClient creates a hub client against the public endpoint.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultHubURL)
}

// NewClientWithBaseURL creates a hub client against a custom endpoint.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		rest: resty.New().SetBaseURL(baseURL),
	}
}

// RepoInfo is the subset of the hub repo metadata the downloader needs.
type RepoInfo struct {
	Siblings []Sibling       `json:"siblings"`
	CardData json.RawMessage `json:"cardData"`
}

// Sibling is one file in a hub repository.
type Sibling struct {
	Rfilename string `json:"rfilename"`
}

// Info fetches repo metadata for a model or dataset repository.
func (c *Client) Info(repoID, repoType string) (*RepoInfo, error) {
	var info RepoInfo
	resp, err := c.rest.R().
		SetResult(&info).
		Get(fmt.Sprintf("/api/%ss/%s", repoType, repoID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repo info for %s: %w", repoID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("repo info request for %s returned %s", repoID, resp.Status())
	}
	return &info, nil
}

// DetectRepoType guesses whether a repository is a model or a dataset,
// defaulting to model when it cannot tell. The heuristic mirrors the usual
// card-metadata check plus a name-pattern fallback.
func (c *Client) DetectRepoType(repoID string) string {
	if strings.Contains(strings.ToLower(repoID), "datasets") {
		return "dataset"
	}
	info, err := c.Info(repoID, "model")
	if err != nil {
		fmt.Printf("⚠️ Could not determine repo type for %s. Defaulting to model.\n", repoID)
		return "model"
	}
	if repoTypeFromCard(info.CardData) == "dataset" {
		return "dataset"
	}
	return "model"
}

// repoTypeFromCard inspects raw card metadata for dataset markers.
func repoTypeFromCard(cardData json.RawMessage) string {
	if strings.Contains(string(cardData), "dataset_info") {
		return "dataset"
	}
	return "model"
}

// DownloadSnapshot downloads every file of a repository into localDir,
// preserving the repo's internal layout. Returns the number of files written.
func (c *Client) DownloadSnapshot(repoID, repoType, localDir string) (int, error) {
	info, err := c.Info(repoID, repoType)
	if err != nil {
		return 0, err
	}
	if len(info.Siblings) == 0 {
		return 0, fmt.Errorf("repository %s lists no files", repoID)
	}

	fmt.Printf("⬇️ Downloading %s %s (%d files) to %s\n", repoType, repoID, len(info.Siblings), localDir)

	count := 0
	for _, sibling := range info.Siblings {
		dest := filepath.Join(localDir, filepath.FromSlash(sibling.Rfilename))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return count, fmt.Errorf("failed to create directory for %s: %w", sibling.Rfilename, err)
		}

		resp, err := c.rest.R().
			SetOutput(dest).
			Get(resolvePath(repoID, repoType, sibling.Rfilename))
		if err != nil {
			return count, fmt.Errorf("failed to download %s: %w", sibling.Rfilename, err)
		}
		if resp.IsError() {
			return count, fmt.Errorf("download of %s returned %s", sibling.Rfilename, resp.Status())
		}

		count++
		fmt.Printf("📄 %d/%d %s\n", count, len(info.Siblings), sibling.Rfilename)
	}

	return count, nil
}

// resolvePath builds the hub file-resolution path for a repo file.
func resolvePath(repoID, repoType, fileName string) string {
	if repoType == "dataset" {
		return fmt.Sprintf("/datasets/%s/resolve/main/%s", repoID, fileName)
	}
	return fmt.Sprintf("/%s/resolve/main/%s", repoID, fileName)
}

// TargetDir maps a repo ID to its local snapshot folder under baseFolder,
// replacing path separators in the ID.
func TargetDir(baseFolder, repoID string) string {
	return filepath.Join(baseFolder, strings.ReplaceAll(repoID, "/", "_"))
}
