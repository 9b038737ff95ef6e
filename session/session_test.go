package session

import (
	"fmt"
	"testing"
	"time"

	"grooviabot/catalog"
)

func TestStoreReturnsSameSession(t *testing.T) {
	store := NewStore()
	first := store.Get(42)
	second := store.Get(42)
	if first != second {
		t.Error("Get(42) returned two different sessions")
	}
	if store.Get(43) == first {
		t.Error("distinct users must not share a session")
	}
}

func TestNewSessionDefaults(t *testing.T) {
	store := NewStore()
	view := store.Get(1).View()
	if view.Quality != QualityHigh {
		t.Errorf("default quality = %s; want high", view.Quality)
	}
	if view.State != StateIdle {
		t.Errorf("default state = %d; want StateIdle", view.State)
	}
	if view.Query != "" || view.Page != 0 {
		t.Errorf("fresh session has query/page set: %q/%d", view.Query, view.Page)
	}
}

func TestSetBrowsingOverwrites(t *testing.T) {
	sess := NewStore().Get(1)

	items := []Item{{Kind: catalog.KindSong, ID: "s1", Name: "One"}}
	sess.SetBrowsing(catalog.KindSong, "tum hi ho", 0, items)

	view := sess.View()
	if view.State != StateBrowsing || view.SearchKind != catalog.KindSong {
		t.Errorf("state/kind = %d/%s; want browsing/song", view.State, view.SearchKind)
	}
	if view.Query != "tum hi ho" || view.Page != 0 || len(view.Results) != 1 {
		t.Errorf("browsing fields inconsistent: %+v", view)
	}

	// a new page replaces, never appends
	sess.SetBrowsing(catalog.KindSong, "tum hi ho", 1, []Item{
		{Kind: catalog.KindSong, ID: "s11", Name: "Eleven"},
		{Kind: catalog.KindSong, ID: "s12", Name: "Twelve"},
	})
	view = sess.View()
	if view.Page != 1 || len(view.Results) != 2 || view.Results[0].ID != "s11" {
		t.Errorf("page turn did not replace results: %+v", view)
	}
}

func TestSetBrowsingIdempotent(t *testing.T) {
	sess := NewStore().Get(1)
	items := []Item{{Kind: catalog.KindSong, ID: "s1", Name: "One"}}

	sess.SetBrowsing(catalog.KindSong, "q", 0, items)
	first := sess.View()
	sess.SetBrowsing(catalog.KindSong, "q", 0, items)
	second := sess.View()

	if first.Query != second.Query || first.Page != second.Page ||
		first.SearchKind != second.SearchKind || len(first.Results) != len(second.Results) {
		t.Errorf("identical searches produced different session shapes: %+v vs %+v", first, second)
	}
}

func TestHistoryBoundedMostRecentFirst(t *testing.T) {
	sess := NewStore().Get(1)
	for i := 0; i < 25; i++ {
		sess.AddHistory(HistoryEntry{
			Kind: catalog.KindSong,
			ID:   fmt.Sprintf("s%d", i),
			Name: fmt.Sprintf("Song %d", i),
			At:   time.Now(),
		})
	}

	history := sess.View().History
	if len(history) != 20 {
		t.Fatalf("history length = %d; want 20", len(history))
	}
	if history[0].ID != "s24" {
		t.Errorf("history[0] = %s; want s24 (most recent first)", history[0].ID)
	}
	if history[19].ID != "s5" {
		t.Errorf("history[19] = %s; want s5 (oldest retained)", history[19].ID)
	}
}

func TestAwaitQueryKeepsKind(t *testing.T) {
	sess := NewStore().Get(1)
	sess.AwaitQuery(catalog.KindPlaylist)
	view := sess.View()
	if view.State != StateAwaitingQuery || view.PendingKind != catalog.KindPlaylist {
		t.Errorf("AwaitQuery state = %d kind = %s", view.State, view.PendingKind)
	}
}

func TestPendingModeSurvivesBrowsing(t *testing.T) {
	sess := NewStore().Get(1)
	sess.AwaitQuery(catalog.KindAlbum)

	sess.SetBrowsing(catalog.KindAlbum, "greatest hits", 0, []Item{
		{Kind: catalog.KindAlbum, ID: "al1", Name: "Greatest Hits"},
	})

	view := sess.View()
	if view.State != StateAwaitingQuery || view.PendingKind != catalog.KindAlbum {
		t.Errorf("mode after search = %d/%s; want awaiting album until a new menu selection",
			view.State, view.PendingKind)
	}
	if view.Query != "greatest hits" || view.SearchKind != catalog.KindAlbum {
		t.Errorf("browsing context not recorded: %q/%s", view.Query, view.SearchKind)
	}

	// the next menu selection replaces the mode
	sess.AwaitQuery(catalog.KindArtist)
	if view := sess.View(); view.PendingKind != catalog.KindArtist {
		t.Errorf("PendingKind = %s; want artist after new selection", view.PendingKind)
	}
}
