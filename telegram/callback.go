package telegram

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"grooviabot/catalog"
)

// Action is the verb carried by an inline button press.
type Action string

const (
	ActionSong             Action = "song"
	ActionAlbum            Action = "album"
	ActionPlaylist         Action = "playlist"
	ActionArtist           Action = "artist"
	ActionDownload         Action = "dl"
	ActionPlaylistDownload Action = "pldl"
	ActionAlbumDownload    Action = "abdl"
	ActionSimilar          Action = "similar"
	ActionArtistSongs      Action = "artsongs"
	ActionArtistAlbums     Action = "artalbums"
	ActionPage             Action = "page"
	ActionQuality          Action = "q"
	ActionNoop             Action = "noop"
)

// Telegram rejects callback data longer than 64 bytes.
const maxCallbackData = 64

// Callback is the decoded form of a button payload. Simple verbs carry
// a target in Payload (an entity id, or the quality value for q).
// Page turns carry the full (kind, query, page) triple so pagination
// stays valid regardless of later session mutation.
type Callback struct {
	Action  Action
	Payload string
	Kind    catalog.Kind
	Query   string
	Page    int
}

func NewCallback(action Action, payload string) Callback {
	return Callback{Action: action, Payload: payload}
}

func NewPageCallback(kind catalog.Kind, query string, page int) Callback {
	return Callback{Action: ActionPage, Kind: kind, Query: query, Page: page}
}

// Encode renders the wire form: "verb:payload", or for page turns
// "page:kind|urlEncodedQuery|pageNumber". Queries are shortened until
// the whole payload fits Telegram's size cap.
func (cb Callback) Encode() string {
	if cb.Action == ActionNoop {
		return string(ActionNoop)
	}
	if cb.Action != ActionPage {
		return string(cb.Action) + ":" + cb.Payload
	}

	prefix := string(ActionPage) + ":" + string(cb.Kind) + "|"
	suffix := "|" + strconv.Itoa(cb.Page)
	budget := maxCallbackData - len(prefix) - len(suffix)

	query := cb.Query
	escaped := url.QueryEscape(query)
	for len(escaped) > budget && query != "" {
		runes := []rune(query)
		query = string(runes[:len(runes)-1])
		escaped = url.QueryEscape(query)
	}

	return prefix + escaped + suffix
}

// DecodeCallback parses button data. Unknown or malformed payloads
// return an error; callers treat that as a no-op.
func DecodeCallback(data string) (Callback, error) {
	if data == string(ActionNoop) {
		return Callback{Action: ActionNoop}, nil
	}

	verb, payload, found := strings.Cut(data, ":")
	if !found {
		return Callback{}, fmt.Errorf("callback %q has no verb separator", data)
	}

	switch Action(verb) {
	case ActionSong, ActionAlbum, ActionPlaylist, ActionArtist,
		ActionDownload, ActionPlaylistDownload, ActionAlbumDownload,
		ActionSimilar, ActionArtistSongs, ActionArtistAlbums:
		if payload == "" {
			return Callback{}, fmt.Errorf("callback %q has no target", data)
		}
		return Callback{Action: Action(verb), Payload: payload}, nil
	case ActionQuality:
		if payload == "" {
			return Callback{}, fmt.Errorf("callback %q has no quality", data)
		}
		return Callback{Action: ActionQuality, Payload: payload}, nil
	case ActionPage:
		parts := strings.Split(payload, "|")
		if len(parts) != 3 {
			return Callback{}, fmt.Errorf("page callback %q malformed", data)
		}
		query, err := url.QueryUnescape(parts[1])
		if err != nil {
			return Callback{}, fmt.Errorf("page callback %q query: %w", data, err)
		}
		page, err := strconv.Atoi(parts[2])
		if err != nil || page < 0 {
			return Callback{}, fmt.Errorf("page callback %q page number: %v", data, err)
		}
		kind := catalog.Kind(parts[0])
		switch kind {
		case catalog.KindSong, catalog.KindAlbum, catalog.KindPlaylist, catalog.KindArtist:
		default:
			return Callback{}, fmt.Errorf("page callback %q unknown kind", data)
		}
		return Callback{Action: ActionPage, Kind: kind, Query: query, Page: page}, nil
	}

	return Callback{}, fmt.Errorf("unknown callback verb %q", verb)
}
