// package formatter provides functions to export video data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/shared"
)

// ExportToCSV converts a video's comments to CSV format with columns: ID, Author, Text, Timestamp
func ExportToCSV(video *api.Video) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Author", "Text", "Timestamp"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, comment := range video.Comments {
		record := []string{
			comment.CommentID,
			comment.Username,
			comment.Text,
			comment.Timestamp,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a video to Markdown format with optional thumbnail image
func ExportToMarkdown(video *api.Video, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", video.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Thumbnail](%s)\n\n", imageFilename))
	}

	if video.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", video.Description))
	}

	buf.WriteString(fmt.Sprintf("**Channel**: %s\n", video.DisplayUploader()))
	buf.WriteString(fmt.Sprintf("**Category**: %s\n", video.Category))
	buf.WriteString(fmt.Sprintf("**Views**: %s | **Likes**: %d | **Dislikes**: %d\n\n",
		strconv.Itoa(video.Views), video.LikeCount(), video.DislikeCount()))

	buf.WriteString(fmt.Sprintf("## Comments (%d)\n\n", video.CommentCount()))
	for i, comment := range video.Comments {
		stampPart := ""
		if comment.Timestamp != "" {
			stampPart = fmt.Sprintf(" [%s]", comment.Timestamp)
		}
		buf.WriteString(fmt.Sprintf("%d. **%s**%s: %s\n", i+1, comment.Username, stampPart, comment.Text))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a video to plain text format
func ExportToText(video *api.Video) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Video: %s\n", video.Title))
	buf.WriteString(fmt.Sprintf("Channel: %s\n", video.DisplayUploader()))
	if video.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", video.Description))
	}
	buf.WriteString(fmt.Sprintf("Comments: %d\n\n", video.CommentCount()))

	for i, comment := range video.Comments {
		buf.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, comment.Username, comment.Text))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of video metadata (without comments)
func ToMetadataJSON(video *api.Video) ([]byte, error) {
	meta := *video
	meta.Comments = nil
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	CommentsFile string
	MetadataFile string
}

// WriteCSVExport exports a video to CSV format with accompanying metadata JSON file.
//
// Defaults to the video ID as the base filename & creates {base}_comments.csv and {base}_metadata.json
func WriteCSVExport(video *api.Video, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = video.VideoID
	}

	csvData, err := ExportToCSV(video)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	commentsFile := baseFilepath + "_comments.csv"
	if err := os.WriteFile(commentsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(video)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		CommentsFile: commentsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Thumbnail string
}

// WriteMarkdownExport exports a video to Markdown format in a dedicated directory.
//
// Directory name defaults to the video ID.
// If the video carries a thumbnail URL, attempts to download it.
// Creates a directory structure: {dir}/README.md and optionally {dir}/thumbnail.jpg
func WriteMarkdownExport(video *api.Video, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = video.VideoID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var thumbFilename string
	if video.ThumbnailURL != "" {
		imageData, err := DownloadImage(video.ThumbnailURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download thumbnail: %v\n", err)
		} else {
			thumbFilename = "thumbnail.jpg"
			thumbPath := fmt.Sprintf("%s/%s", outputDir, thumbFilename)
			if err := os.WriteFile(thumbPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save thumbnail: %v\n", err)
				thumbFilename = ""
			} else {
				result.Thumbnail = thumbPath
				result.Files = append(result.Files, thumbPath)
			}
		}
	}

	mdData, err := ExportToMarkdown(video, thumbFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a video to plain text format.
//
// Defaults to {video.VideoID}_comments.txt as the filename.
func WriteTextExport(video *api.Video, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_comments.txt", video.VideoID)
	}

	textData, err := ExportToText(video)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteExportManifest writes a JSON summary of an export run.
func WriteExportManifest(result any, path string) error {
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
