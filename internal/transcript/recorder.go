// Package transcript turns a channel's full message history into an
// immutable flat-file record.
package transcript

import (
	"context"
	"fmt"
	"strings"

	"github.com/rustytiger/tigerbot/internal/platform"
)

const (
	timestampLayout = "2006-01-02 15:04:05 UTC"
	pageSize        = 100
)

// Artifact describes one written transcript.
type Artifact struct {
	Name  string
	Path  string
	Lines int
}

// Recorder streams a channel's ordered history into the store.
type Recorder struct {
	history platform.HistoryReader
	store   *Store
}

// NewRecorder constructs a recorder.
func NewRecorder(history platform.HistoryReader, store *Store) *Recorder {
	return &Recorder{history: history, store: store}
}

// ArtifactName is the deterministic transcript filename for a channel.
func ArtifactName(channelName, channelID string) string {
	return fmt.Sprintf("%s-%s.txt", channelName, channelID)
}

// Record fetches the channel's entire history oldest first and writes the
// rendered transcript to the store. History is pulled one page at a time so
// memory stays bounded for very long channels. Any retrieval or write
// failure aborts with an error and leaves no partial artifact guarantees;
// callers must not treat the channel as archived on error.
func (r *Recorder) Record(ctx context.Context, channel *platform.Channel) (*Artifact, error) {
	lines := []string{
		fmt.Sprintf("Transcript for #%s (%s) in %s\n", channel.Name, channel.ID, channel.GuildName),
		fmt.Sprintf("Channel created at: %s UTC\n", channel.CreatedAt.UTC().Format("2006-01-02 15:04:05")),
		strings.Repeat("=", 60) + "\n",
	}

	afterID := ""
	for {
		page, err := r.history.MessagesAfter(ctx, channel.ID, afterID, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch history for %s: %w", channel.ID, err)
		}
		if len(page) == 0 {
			break
		}
		for _, msg := range page {
			lines = append(lines, RenderMessage(msg)...)
		}
		afterID = page[len(page)-1].ID
		if len(page) < pageSize {
			break
		}
	}

	name := ArtifactName(channel.Name, channel.ID)
	path, err := r.store.Save(name, lines)
	if err != nil {
		return nil, err
	}
	return &Artifact{Name: name, Path: path, Lines: len(lines)}, nil
}

// RenderMessage renders one history message into transcript lines: one line
// per embed block, then the text line if non-empty, then one line per
// attachment. All lines share the message's timestamp and author.
func RenderMessage(msg platform.Message) []string {
	author := fmt.Sprintf("%s (%s)", msg.Author.Username, msg.Author.ID)
	ts := msg.Timestamp.UTC().Format(timestampLayout)

	var lines []string
	for idx, block := range msg.Embeds {
		lines = append(lines, fmt.Sprintf("[%s] %s (EMBED %d) Title: %s\n%s\n", ts, author, idx+1, block.Title, block.Description))
	}
	if msg.Content != "" {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s\n", ts, author, msg.Content))
	}
	for _, att := range msg.Attachments {
		lines = append(lines, fmt.Sprintf("[%s] %s attached: %s\n", ts, author, att.URL))
	}
	return lines
}
