package main

import (
	"fmt"
	"strings"

	"entrain/internal/playback"
)

const detailsLimit = 128

func renderStatus(state playback.State) string {
	var b strings.Builder

	rows := [][]string{
		{"Playing", yesNo(state.IsPlaying)},
		{"Track", orDash(state.TrackName)},
		{"Mode", orDash(state.Mode)},
		{"Genre", orDash(state.Genre)},
		{"Neural effect", orDash(state.NeuralEffect)},
		{"Activity", orDash(state.Activity)},
	}
	if state.SessionState != "" || state.SessionTime != "" {
		rows = append(rows, []string{"Session", strings.TrimSpace(state.SessionState + " " + state.SessionTime)})
	}
	if state.InfinitePlay || state.ADHDMode {
		rows = append(rows, []string{"Flags", flagList(state)})
	}

	b.WriteString(renderTable([]string{"Field", "Value"}, rows))
	b.WriteString("\n\n")
	b.WriteString(state.PresenceString())
	if details := state.DetailsString(); details != "" {
		b.WriteString("\n")
		b.WriteString(playback.Truncate(details, detailsLimit))
	}
	if icon := playback.GenreIconURL(state.Genre); state.Active() && icon != "" {
		b.WriteString(fmt.Sprintf("\nicon: %s", icon))
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func flagList(state playback.State) string {
	var flags []string
	if state.InfinitePlay {
		flags = append(flags, "infinite play")
	}
	if state.ADHDMode {
		flags = append(flags, "adhd mode")
	}
	return strings.Join(flags, ", ")
}
