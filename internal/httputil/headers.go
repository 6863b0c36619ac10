package httputil

import "net/http"

// WatchPageHeaders returns browser-like headers for youtube.com page loads.
func WatchPageHeaders(lang string) http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", acceptLanguage(lang))
	h.Set("Accept-Encoding", "gzip, br")
	// Skips the EU consent interstitial.
	h.Set("Cookie", "CONSENT=YES+1")
	return h
}

// InnertubeHeaders returns headers for the ANDROID youtubei client.
func InnertubeHeaders(userAgent, clientVersion string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "*/*")
	h.Set("User-Agent", userAgent)
	h.Set("X-Youtube-Client-Name", "3")
	h.Set("X-Youtube-Client-Version", clientVersion)
	return h
}

func acceptLanguage(lang string) string {
	if lang == "" || lang == "en" {
		return "en-US,en;q=0.9"
	}
	return lang + ",en;q=0.8"
}
