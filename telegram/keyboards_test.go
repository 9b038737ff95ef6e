package telegram

import (
	"strings"
	"testing"

	"grooviabot/catalog"
	"grooviabot/session"
)

func resultButtons(n int) []ResultButton {
	buttons := make([]ResultButton, 0, n)
	for i := 0; i < n; i++ {
		buttons = append(buttons, ResultButton{
			Label: string(rune('1' + i)),
			Data:  NewCallback(ActionSong, "id"),
		})
	}
	return buttons
}

func TestResultsKeyboardPaginationBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		wantPrev   bool
		wantNext   bool
	}{
		{"first of three", 0, 3, false, true},
		{"middle", 1, 3, true, true},
		{"last", 2, 3, true, false},
		{"single page", 0, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := ResultsKeyboard(resultButtons(3), catalog.KindSong, "q", tt.page, tt.totalPages)
			var prev, next bool
			for _, row := range kb.InlineKeyboard {
				for _, btn := range row {
					if strings.Contains(btn.Text, "Prev") {
						prev = true
					}
					if strings.Contains(btn.Text, "Next") {
						next = true
					}
				}
			}
			if prev != tt.wantPrev || next != tt.wantNext {
				t.Errorf("page %d/%d: prev=%v next=%v; want prev=%v next=%v",
					tt.page, tt.totalPages, prev, next, tt.wantPrev, tt.wantNext)
			}
		})
	}
}

func TestResultsKeyboardRowLayout(t *testing.T) {
	kb := ResultsKeyboard(resultButtons(7), catalog.KindSong, "q", 0, 1)
	// 7 item buttons over rows of 5, no nav row on a single page
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d; want 2", len(kb.InlineKeyboard))
	}
	if len(kb.InlineKeyboard[0]) != 5 || len(kb.InlineKeyboard[1]) != 2 {
		t.Errorf("row sizes = %d,%d; want 5,2",
			len(kb.InlineKeyboard[0]), len(kb.InlineKeyboard[1]))
	}
}

func TestResultsKeyboardPageCallbacks(t *testing.T) {
	kb := ResultsKeyboard(resultButtons(1), catalog.KindSong, "Kabhi Khushi Kabhie Gham", 1, 3)
	nav := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]

	for _, btn := range nav {
		if btn.CallbackData == nil {
			t.Fatal("nav button without callback data")
		}
		cb, err := DecodeCallback(*btn.CallbackData)
		if err != nil {
			t.Fatalf("nav callback %q undecodable: %v", *btn.CallbackData, err)
		}
		switch {
		case strings.Contains(btn.Text, "Prev"):
			if cb.Page != 0 || cb.Query != "Kabhi Khushi Kabhie Gham" {
				t.Errorf("prev = %+v; want page 0 with original query", cb)
			}
		case strings.Contains(btn.Text, "Next"):
			if cb.Page != 2 || cb.Kind != catalog.KindSong {
				t.Errorf("next = %+v; want page 2 of song search", cb)
			}
		default:
			if cb.Action != ActionNoop {
				t.Errorf("page indicator action = %s; want noop", cb.Action)
			}
		}
	}
}

func TestQualityKeyboardMarksCurrent(t *testing.T) {
	kb := QualityKeyboard(session.QualityMedium)
	var marked []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.HasPrefix(btn.Text, "✅") {
				marked = append(marked, btn.Text)
			}
		}
	}
	if len(marked) != 1 || !strings.Contains(marked[0], "Medium") {
		t.Errorf("marked buttons = %v; want exactly the Medium entry", marked)
	}
}

func TestMainMenuContainsAllLabels(t *testing.T) {
	kb := MainMenuKeyboard()
	labels := map[string]bool{}
	for _, row := range kb.Keyboard {
		for _, btn := range row {
			labels[btn.Text] = true
		}
	}
	for _, want := range []string{
		MenuSearchSongs, MenuSearchAlbums, MenuSearchPlaylists,
		MenuSearchArtists, MenuSettings, MenuHistory, MenuTrending,
	} {
		if !labels[want] {
			t.Errorf("menu keyboard missing %q", want)
		}
	}
}
