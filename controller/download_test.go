package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"grooviabot/catalog"
	"grooviabot/session"
)

func TestResolveAudioURL(t *testing.T) {
	encodings := func(qualities ...string) []catalog.Encoding {
		var out []catalog.Encoding
		for _, q := range qualities {
			out = append(out, catalog.Encoding{Quality: q, URL: "url-" + q})
		}
		return out
	}

	tests := []struct {
		name    string
		set     []catalog.Encoding
		pref    session.Quality
		want    string
		wantErr error
	}{
		{
			name: "preference present",
			set:  encodings("96kbps", "160kbps", "320kbps"),
			pref: session.QualityMedium,
			want: "url-160kbps",
		},
		{
			name: "medium pref falls back to high first",
			set:  encodings("96kbps", "320kbps"),
			pref: session.QualityMedium,
			want: "url-320kbps",
		},
		{
			name: "high pref missing falls to medium",
			set:  encodings("96kbps", "160kbps"),
			pref: session.QualityHigh,
			want: "url-160kbps",
		},
		{
			name: "unknown labels fall to last entry",
			set:  encodings("12kbps", "48kbps"),
			pref: session.QualityHigh,
			want: "url-48kbps",
		},
		{
			name:    "empty set",
			set:     nil,
			pref:    session.QualityHigh,
			wantErr: ErrNoEncoding,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song := &catalog.Song{ID: "s", Name: "S", Encodings: tt.set}
			got, err := ResolveAudioURL(song, tt.pref)
			if err != tt.wantErr {
				t.Fatalf("error = %v; want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("url = %s; want %s", got, tt.want)
			}
		})
	}
}

// playlistHandler serves a 12-song playlist where song index 4 (track
// #5) has no encodings at all.
func playlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songs := make([]map[string]any, 0, 12)
		for i := 0; i < 12; i++ {
			song := map[string]any{
				"id":   fmt.Sprintf("s%d", i+1),
				"name": fmt.Sprintf("Track %d", i+1),
			}
			if i != 4 {
				song["downloadUrl"] = []map[string]string{
					{"quality": "320kbps", "url": fmt.Sprintf("http://cdn/s%d", i+1)},
				}
			}
			songs = append(songs, song)
		}
		resp := map[string]any{
			"success": true,
			"data": map[string]any{
				"id": "pl1", "name": "Road Trip", "songCount": 12, "songs": songs,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestDownloadPlaylistSkipsFailingTrack(t *testing.T) {
	f := newFixture(t, playlistHandler())

	if err := f.controller.DownloadPlaylist(context.Background(), 1, 1, "pl1"); err != nil {
		t.Fatalf("DownloadPlaylist() error = %v", err)
	}

	if len(f.transport.audios) != 11 {
		t.Errorf("delivered = %d; want 11 (track 5 skipped)", len(f.transport.audios))
	}
	if !strippedContains(f.transport.texts, "Track 5") {
		t.Errorf("no skip notice for Track 5 in %v", f.transport.texts)
	}
	// listing order preserved
	if f.transport.audios[0].Title != "Track 1" || f.transport.audios[10].Title != "Track 12" {
		t.Errorf("delivery order broken: first=%s last=%s",
			f.transport.audios[0].Title, f.transport.audios[10].Title)
	}
	if f.stats.Snapshot().Downloads != 11 {
		t.Errorf("download counter = %d; want 11", f.stats.Snapshot().Downloads)
	}
}

func TestDownloadPlaylistContinuesPastDeliveryFailure(t *testing.T) {
	f := newFixture(t, playlistHandler())
	f.transport.failTitles["Track 2"] = true

	if err := f.controller.DownloadPlaylist(context.Background(), 1, 1, "pl1"); err != nil {
		t.Fatalf("DownloadPlaylist() error = %v", err)
	}
	// 12 tracks, one without encodings, one rejected by the transport
	if len(f.transport.audios) != 10 {
		t.Errorf("delivered = %d; want 10", len(f.transport.audios))
	}
	if !strippedContains(f.transport.texts, "Couldn't deliver") {
		t.Errorf("no delivery-failure notice in %v", f.transport.texts)
	}
}

func TestDownloadAllRespectsBatchCap(t *testing.T) {
	f := newFixture(t, playlistHandler())
	f.controller.batchLimit = 3

	if err := f.controller.DownloadPlaylist(context.Background(), 1, 1, "pl1"); err != nil {
		t.Fatalf("DownloadPlaylist() error = %v", err)
	}
	if len(f.transport.audios) != 3 {
		t.Errorf("delivered = %d; want 3 (capped)", len(f.transport.audios))
	}
	if !strippedContains(f.transport.texts, "capped at 3") {
		t.Errorf("cap not announced: %v", f.transport.texts)
	}
}

func TestDownloadSongUsesPreference(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":"s1","name":"One","downloadUrl":[
			{"quality":"96kbps","url":"low"},
			{"quality":"160kbps","url":"mid"},
			{"quality":"320kbps","url":"high"}]}]}`))
	})
	f.sessions.Get(9).SetQuality(session.QualityLow)

	if err := f.controller.DownloadSong(context.Background(), 9, 9, "s1"); err != nil {
		t.Fatalf("DownloadSong() error = %v", err)
	}
	if len(f.transport.audios) != 1 || f.transport.audios[0].URL != "low" {
		t.Errorf("audios = %+v; want the 96kbps url", f.transport.audios)
	}
}

func TestDownloadSongNotFound(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	})

	if err := f.controller.DownloadSong(context.Background(), 1, 1, "gone"); err != nil {
		t.Fatalf("DownloadSong() error = %v; want nil (user-facing outcome)", err)
	}
	if len(f.transport.audios) != 0 {
		t.Errorf("audios = %v; want none", f.transport.audios)
	}
	if !strippedContains(f.transport.texts, "isn't in the catalog") {
		t.Errorf("no not-found notice: %v", f.transport.texts)
	}
}
