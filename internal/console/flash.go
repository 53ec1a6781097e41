package console

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// Notice kinds; the rendered toast color and icon key off these.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

type Notice struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

const flashCookie = "workforce_flash"

// Flash queues a notice for the next rendered page. Multiple notices stack:
// each becomes an independent toast, rendered in insertion order.
func Flash(w http.ResponseWriter, r *http.Request, message, kind string) {
	notices := readNotices(r)
	notices = append(notices, Notice{Message: message, Kind: kind})

	encoded, err := json.Marshal(notices)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(encoded),
		Path:     "/",
		HttpOnly: true,
	})
}

// PopNotices returns the queued notices and clears the cookie so each notice
// is shown exactly once.
func PopNotices(w http.ResponseWriter, r *http.Request) []Notice {
	notices := readNotices(r)
	if len(notices) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
	return notices
}

func readNotices(r *http.Request) []Notice {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(decoded, &notices); err != nil {
		return nil
	}
	return notices
}
