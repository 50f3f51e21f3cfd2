package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cascade/internal/driver"
)

func TestProgressFollowsEvents(t *testing.T) {
	files := []string{"a.css", "b.scss"}
	m := NewProgressModel("checking", files, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.css", Stage: driver.StageParse, Status: driver.StatusWorking})
	assert.Equal(t, "parsing", m.items[0].status)
	assert.InDelta(t, 0.2, m.percent(), 1e-9)

	m.applyEvent(driver.Event{File: "a.css", Stage: driver.StageProject, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.scss", Stage: driver.StageProject, Status: driver.StatusError})
	assert.InDelta(t, 1.0, m.percent(), 1e-9)

	finished, failed := m.counts()
	assert.Equal(t, 2, finished)
	assert.Equal(t, 1, failed)

	// чужие файлы и события прогона целиком игнорируются
	m.applyEvent(driver.Event{File: "zzz.css", Status: driver.StatusError})
	m.applyEvent(driver.Event{Status: driver.StatusDone})
	_, failed = m.counts()
	assert.Equal(t, 1, failed)
}

func TestProgressViewListsFiles(t *testing.T) {
	var files []string
	for i := 0; i < maxListed+3; i++ {
		files = append(files, strings.Repeat("x", i+1)+".css")
	}
	m := NewProgressModel("checking", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: files[len(files)-1], Stage: driver.StageLex, Status: driver.StatusWorking})

	view := m.View()
	require.Contains(t, view, "checking 0/15")
	assert.Contains(t, view, "lexing")
	assert.Contains(t, view, "and 3 more")
	assert.Less(t, strings.Index(view, "lexing"), strings.Index(view, "queued"))
}

func TestProgressViewPutsFinishedLast(t *testing.T) {
	files := []string{"a.css", "b.css", "c.css"}
	m := NewProgressModel("checking", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.css", Stage: driver.StageProject, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "c.css", Stage: driver.StageParse, Status: driver.StatusWorking})

	view := m.View()
	c, b, a := strings.Index(view, "c.css"), strings.Index(view, "b.css"), strings.Index(view, "a.css")
	require.True(t, c >= 0 && b >= 0 && a >= 0, view)
	assert.Less(t, c, b)
	assert.Less(t, b, a)
}

func TestProgressQuitsWhenChannelCloses(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("checking", []string{"a.css"}, events).(*progressModel)
	msg := m.listenForEvent()()
	_, ok := msg.(doneMsg)
	require.True(t, ok)
	m.Update(msg)
	assert.True(t, m.done)
	assert.Contains(t, m.View(), "done: checking")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdefghij", 2))
}
