package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/models"
	"github.com/desertthunder/tubecli/internal/notify"
	"github.com/desertthunder/tubecli/internal/reconcile"
	"github.com/desertthunder/tubecli/internal/session"
	"github.com/desertthunder/tubecli/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	WatchView
	ChannelView
	ConfirmDeleteView
)

// inputMode says what the shared text input is editing.
type inputMode int

const (
	inputNone inputMode = iota
	inputComment
	inputEditComment
	inputEditTitle
)

const toastTickInterval = 250 * time.Millisecond

// HistoryRecorder logs watched videos. Implemented by repositories.HistoryRepository.
type HistoryRecorder interface {
	Create(entry *models.HistoryEntry) error
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	client   *api.Client
	sessions *session.Manager
	watch    *reconcile.WatchSession
	toasts   *notify.Queue
	history  HistoryRecorder

	width  int
	height int

	videoList   list.Model
	channelList list.Model
	suggested   []api.Video

	commentCursor int
	input         textinput.Model
	mode          inputMode
	pendingDelete *api.Video

	help help.Model
	keys keyMap
	err  error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, client *api.Client, sessions *session.Manager, history HistoryRecorder) *Model {
	input := textinput.New()
	input.Placeholder = "Add a comment..."
	input.CharLimit = 500

	return &Model{
		ctx:      ctx,
		view:     HomeView,
		client:   client,
		sessions: sessions,
		watch:    reconcile.NewWatchSession(client, sessions, nil),
		toasts:   notify.NewQueue(),
		history:  history,
		input:    input,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by fetching the public feed.
func (m *Model) Init() tea.Cmd {
	return m.fetchFeed()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.videoList.Width() == 0 {
			m.videoList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.channelList.Width() == 0 {
			m.channelList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.handleInputKeys(msg)
		}
		switch m.view {
		case HomeView:
			return m.handleHomeKeys(msg)
		case WatchView:
			return m.handleWatchKeys(msg)
		case ChannelView:
			return m.handleChannelKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case feedFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.videos))
		for i, v := range msg.videos {
			items[i] = videoItem{video: v}
		}
		m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.videoList.Title = "Tube"
		m.videoList.SetSize(m.width-4, m.height-8)
		return m, nil

	case channelFetchedMsg:
		if msg.err != nil {
			return m, m.pushToast(reconcile.FailureMessage("", msg.err), notify.Error)
		}
		items := make([]list.Item, len(msg.videos))
		for i, v := range msg.videos {
			items[i] = channelItem{video: v}
		}
		m.channelList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.channelList.Title = "My Channel"
		m.channelList.SetSize(m.width-4, m.height-8)
		m.view = ChannelView
		return m, nil

	case videoLoadedMsg:
		if msg.err != nil {
			return m, m.pushToast("Could not load video", notify.Error)
		}
		m.view = WatchView
		m.commentCursor = 0
		return m, m.fetchSuggested(msg.videoID)

	case suggestedFetchedMsg:
		if msg.err == nil {
			m.suggested = msg.videos
		}
		return m, nil

	case mutationDoneMsg:
		return m, m.mutationToast(msg.action, msg.err)

	case videoUpdatedMsg:
		if msg.err != nil {
			return m, m.pushToast(reconcile.FailureMessage("", msg.err), notify.Error)
		}
		return m, tea.Batch(m.pushToast("Video updated", notify.Success), m.fetchChannel())

	case videoDeletedMsg:
		if msg.err != nil {
			return m, m.pushToast(reconcile.FailureMessage("", msg.err), notify.Error)
		}
		m.view = ChannelView
		return m, tea.Batch(m.pushToast("Video deleted", notify.Success), m.fetchChannel())

	case toastTickMsg:
		m.toasts.Expire()
		if m.toasts.Len() > 0 {
			return m, toastTick()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var body string
	switch m.view {
	case HomeView:
		body = m.renderHome()
	case WatchView:
		body = m.renderWatch()
	case ChannelView:
		body = m.renderChannel()
	case ConfirmDeleteView:
		body = m.renderConfirm()
	}
	return body + m.renderToasts()
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.videoList.SelectedItem().(videoItem); ok {
			return m, m.loadVideo(selected.video)
		}
	case key.Matches(msg, m.keys.channel):
		if !m.sessions.Authenticated() {
			return m, m.pushToast("Please sign in first", notify.Warning)
		}
		return m, m.fetchChannel()
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchFeed()
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handleWatchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vm := m.watch.Project()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.like):
		return m, m.dispatch(reconcile.ActionLike, func() error { return m.watch.Like(m.ctx) })
	case key.Matches(msg, m.keys.dislike):
		return m, m.dispatch(reconcile.ActionDislike, func() error { return m.watch.Dislike(m.ctx) })
	case key.Matches(msg, m.keys.open):
		if vm.VideoURL != "" {
			if err := shared.OpenBrowser(vm.VideoURL); err != nil {
				return m, m.pushToast("Could not open browser", notify.Error)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.dispatch("", func() error { return m.watch.Reload(m.ctx) })
	case key.Matches(msg, m.keys.down):
		if m.commentCursor < len(vm.Comments)-1 {
			m.commentCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.commentCursor > 0 {
			m.commentCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.comment):
		if !vm.CanInteract {
			return m, m.pushToast("Please sign in first", notify.Warning)
		}
		m.mode = inputComment
		m.input.Placeholder = "Add a comment..."
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case key.Matches(msg, m.keys.edit):
		return m.beginCommentEdit(vm)
	case key.Matches(msg, m.keys.del):
		return m.deleteComment(vm)
	}
	return m, nil
}

func (m *Model) beginCommentEdit(vm reconcile.ViewModel) (tea.Model, tea.Cmd) {
	if m.commentCursor >= len(vm.Comments) {
		return m, nil
	}
	target := vm.Comments[m.commentCursor]
	if !target.CanEdit {
		return m, m.pushToast("You can only edit your own comments", notify.Warning)
	}

	m.watch.BeginEdit(target.CommentID)
	m.mode = inputEditComment
	m.input.Placeholder = "Edit comment..."
	m.input.SetValue(target.Text)
	m.input.Focus()
	return m, nil
}

func (m *Model) deleteComment(vm reconcile.ViewModel) (tea.Model, tea.Cmd) {
	if m.commentCursor >= len(vm.Comments) {
		return m, nil
	}
	target := vm.Comments[m.commentCursor]
	if !target.CanEdit {
		return m, m.pushToast("You can only delete your own comments", notify.Warning)
	}
	return m, m.dispatch(reconcile.ActionDeleteComment, func() error {
		return m.watch.DeleteComment(m.ctx, target.CommentID)
	})
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == inputEditComment {
			m.watch.CancelEdit()
		}
		m.closeInput()
		return m, nil
	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == inputEditComment {
		m.watch.SetDraft(m.input.Value())
	}
	return m, cmd
}

func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()

	switch m.mode {
	case inputComment:
		m.closeInput()
		return m, m.dispatch(reconcile.ActionAddComment, func() error {
			_, err := m.watch.AddComment(m.ctx, text)
			return err
		})
	case inputEditComment:
		m.watch.SetDraft(text)
		m.closeInput()
		return m, m.dispatch(reconcile.ActionEditComment, func() error {
			return m.watch.SubmitEdit(m.ctx)
		})
	case inputEditTitle:
		video := m.pendingDelete
		m.closeInput()
		if video == nil {
			return m, nil
		}
		title := shared.CleanText(text)
		if title == "" {
			return m, m.pushToast("Title cannot be empty", notify.Warning)
		}
		return m, m.updateVideoTitle(*video, title)
	}
	m.closeInput()
	return m, nil
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) handleChannelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.channelList.SelectedItem().(channelItem); ok {
			return m, m.loadVideo(selected.video)
		}
	case key.Matches(msg, m.keys.edit):
		if selected, ok := m.channelList.SelectedItem().(channelItem); ok {
			video := selected.video
			m.pendingDelete = &video
			m.mode = inputEditTitle
			m.input.Placeholder = "New title..."
			m.input.SetValue(video.Title)
			m.input.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.del):
		if selected, ok := m.channelList.SelectedItem().(channelItem); ok {
			video := selected.video
			m.pendingDelete = &video
			m.view = ConfirmDeleteView
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchChannel()
	}

	var cmd tea.Cmd
	m.channelList, cmd = m.channelList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		video := m.pendingDelete
		m.pendingDelete = nil
		if video == nil {
			m.view = ChannelView
			return m, nil
		}
		return m, m.deleteVideo(*video)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.pendingDelete = nil
		m.view = ChannelView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeView:
		m.videoList, cmd = m.videoList.Update(msg)
	case ChannelView:
		m.channelList, cmd = m.channelList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchFeed() tea.Cmd {
	return func() tea.Msg {
		videos, err := m.client.List(m.ctx)
		return feedFetchedMsg{videos: videos, err: err}
	}
}

func (m *Model) fetchChannel() tea.Cmd {
	return func() tea.Msg {
		videos, err := m.client.MyVideos(m.ctx)
		return channelFetchedMsg{videos: videos, err: err}
	}
}

func (m *Model) loadVideo(video api.Video) tea.Cmd {
	return func() tea.Msg {
		if err := m.watch.Load(m.ctx, video.VideoID); err != nil {
			return videoLoadedMsg{videoID: video.VideoID, err: err}
		}
		if m.history != nil {
			// recording failures never block playback
			entry := models.NewHistoryEntry(0, video.VideoID, video.Title, video.DisplayUploader())
			_ = m.history.Create(entry)
		}
		return videoLoadedMsg{videoID: video.VideoID}
	}
}

func (m *Model) fetchSuggested(videoID string) tea.Cmd {
	return func() tea.Msg {
		vm := m.watch.Project()
		videos, err := m.client.Suggested(m.ctx, vm.Category, videoID)
		return suggestedFetchedMsg{videos: videos, err: err}
	}
}

func (m *Model) dispatch(action reconcile.Action, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{action: action, err: fn()}
	}
}

func (m *Model) deleteVideo(video api.Video) tea.Cmd {
	return func() tea.Msg {
		return videoDeletedMsg{videoID: video.VideoID, err: m.client.DeleteVideo(m.ctx, video.VideoID)}
	}
}

func (m *Model) updateVideoTitle(video api.Video, title string) tea.Cmd {
	return func() tea.Msg {
		update := api.VideoUpdate{
			Title:       title,
			Description: video.Description,
			Category:    video.Category,
		}
		return videoUpdatedMsg{videoID: video.VideoID, err: m.client.UpdateVideo(m.ctx, video.VideoID, update)}
	}
}

// mutationToast maps a mutation result to a toast, distinguishing failed
// preconditions (warnings) from failed requests (errors).
func (m *Model) mutationToast(action reconcile.Action, err error) tea.Cmd {
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrLoginRequired):
			return m.pushToast("Please sign in first", notify.Warning)
		case errors.Is(err, shared.ErrEmptyComment):
			return m.pushToast("Comment cannot be empty", notify.Warning)
		default:
			return m.pushToast(reconcile.FailureMessage(action, err), notify.Error)
		}
	}

	switch action {
	case reconcile.ActionAddComment:
		return m.pushToast("Comment posted", notify.Success)
	case reconcile.ActionEditComment:
		return m.pushToast("Comment updated", notify.Success)
	case reconcile.ActionDeleteComment:
		return m.pushToast("Comment deleted", notify.Success)
	}
	return nil
}

func (m *Model) pushToast(message string, kind notify.Kind) tea.Cmd {
	m.toasts.Push(message, kind)
	return toastTick()
}

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

func (m *Model) renderHome() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.channel, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderWatch() string {
	vm := m.watch.Project()
	if vm.VideoID == "" {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(vm.Title))
	b.WriteString(fmt.Sprintf("\n%s • %d views • 👍 %d • 👎 %d\n",
		vm.Uploader, vm.Views, vm.LikeCount, vm.DislikeCount))
	if vm.Liked {
		b.WriteString(styles.success.Render("You liked this video") + "\n")
	} else if vm.Disliked {
		b.WriteString(styles.warning.Render("You disliked this video") + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%s\n", vm.Description))

	b.WriteString(fmt.Sprintf("\n%s\n", styles.title.Render(fmt.Sprintf("Comments (%d)", vm.CommentCount))))
	for i, c := range vm.Comments {
		cursor := "  "
		if i == m.commentCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s: %s", cursor, c.Username, c.Text)
		if c.InEdit {
			line += styles.warning.Render(" [editing]")
		}
		b.WriteString(line + "\n")
	}

	if m.mode == inputComment || m.mode == inputEditComment {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	if len(m.suggested) > 0 {
		b.WriteString("\n" + styles.title.Render("Up next") + "\n")
		for i, v := range m.suggested {
			if i >= 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  %s (%s)\n", v.Title, v.DisplayUploader()))
		}
	}

	helpKeys := []key.Binding{m.keys.like, m.keys.dislike, m.keys.comment, m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderChannel() string {
	if m.mode == inputEditTitle {
		return fmt.Sprintf("%s\n\n%s\n", styles.title.Render("Edit Title"), m.input.View())
	}
	helpKeys := []key.Binding{m.keys.edit, m.keys.del, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.channelList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	if m.pendingDelete == nil {
		return ""
	}
	title := styles.title.Render(fmt.Sprintf("Delete '%s'?", m.pendingDelete.Title))
	warning := styles.warning.Render("This removes the video and all of its comments.")
	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n\n%s", title, warning, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderToasts() string {
	active := m.toasts.Active()
	if len(active) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, t := range active {
		b.WriteString("\n" + styles.toast(string(t.Kind)).Render(t.Message))
	}
	return b.String()
}
