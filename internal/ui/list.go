package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tubecli/internal/api"
)

var (
	_ list.Item = videoItem{}
	_ list.Item = channelItem{}
)

// videoItem wraps [api.Video] to implement [list.Item] in the public feed.
type videoItem struct {
	video api.Video
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return i.video.Title }
func (i videoItem) Description() string {
	desc := fmt.Sprintf("%s • %d views", i.video.DisplayUploader(), i.video.Views)
	if i.video.Category != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.video.Category)
	}
	return desc
}

// channelItem wraps [api.Video] to implement [list.Item] for the user's uploads.
type channelItem struct {
	video api.Video
}

func (i channelItem) FilterValue() string { return i.video.Title }
func (i channelItem) Title() string       { return i.video.Title }
func (i channelItem) Description() string {
	return fmt.Sprintf("%d views • %d likes • %d comments",
		i.video.Views, i.video.LikeCount(), i.video.CommentCount())
}
