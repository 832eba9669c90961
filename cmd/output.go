package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	return t
}

func printJSON[T any](w io.Writer, value T) error {
	return encoding.WriteJSON(w, value)
}

// printEmptyResult prints a "no results" message with a create hint
func printEmptyResult(w io.Writer, resourceType, createCmd string) {
	_, _ = fmt.Fprintf(w, "No %s yet.\n", resourceType)
	_, _ = fmt.Fprintf(w, "Create one with: %s\n", createCmd)
}

func printProfiles(w io.Writer, profiles []model.Profile, activeID string) error {
	if len(profiles) == 0 {
		printEmptyResult(w, "clones", "vanaclone create")
		return nil
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"", "ID", "Name", "App", "Theme", "Tags", "Location", "Created"})

	for _, p := range profiles {
		marker := ""
		if p.ID == activeID {
			marker = "*"
		}

		location := ""
		if p.DeviceIdentity != nil {
			location = p.DeviceIdentity.Location.City
		}

		t.AppendRow(table.Row{
			marker,
			shortID(p.ID),
			truncateString(p.Name, 32),
			p.AppName,
			p.ThemeColor,
			strings.Join(p.Tags, ", "),
			location,
			formatTime(p.CreatedAt),
		})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d clone(s)", len(profiles))})
	t.Render()

	return nil
}

func formatTime(ts model.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}

	return ts.Local().Format(timeLayout)
}

// shortID keeps the first block of a UUID; other ids are shown whole.
func shortID(id string) string {
	if len(id) == 36 && id[8] == '-' {
		return id[:8]
	}

	return id
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}

func yesNo(on bool) string {
	if on {
		return "on"
	}

	return "off"
}
