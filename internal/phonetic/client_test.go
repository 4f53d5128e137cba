package phonetic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// dictionaryServer serves canned bodies keyed by the last path segment.
func dictionaryServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		word := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		body, ok := bodies[word]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title":"No Definitions Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup_PrefersSlashDelimited(t *testing.T) {
	srv := dictionaryServer(t, map[string]string{
		"word": `[{"word":"word","phonetics":[{"text":"wɝd"},{"text":"/wɜːrd/"}]}]`,
	})

	entry := NewClient(srv.URL).Lookup(context.Background(), "word")
	if entry.Transcription != "/wɜːrd/" {
		t.Errorf("Transcription: got %q, want %q", entry.Transcription, "/wɜːrd/")
	}
	if entry.Word != "word" {
		t.Errorf("Word: got %q, want word", entry.Word)
	}
}

func TestLookup_SelectionRules(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"first slash wins", `[{"phonetics":[{"text":"/a/"},{"text":"/b/"}]}]`, "/a/"},
		{"fallback to first non-empty", `[{"phonetics":[{"text":""},{"text":"kæt"},{"text":"kat"}]}]`, "kæt"},
		{"skip empty before slash", `[{"phonetics":[{"text":""},{"audio":"x.mp3"},{"text":"/kæt/"}]}]`, "/kæt/"},
		{"only first entry is scanned", `[{"phonetics":[]},{"phonetics":[{"text":"/late/"}]}]`, NoTranscription},
		{"no phonetics field", `[{"word":"cat"}]`, NoTranscription},
		{"empty array", `[]`, NoTranscription},
		{"all empty", `[{"phonetics":[{"text":""},{"audio":"a.mp3"}]}]`, NoTranscription},
		{"object instead of array", `{"phonetics":[{"text":"/x/"}]}`, NoTranscription},
		{"garbage", `not json`, NoTranscription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := dictionaryServer(t, map[string]string{"cat": tt.body})
			entry := NewClient(srv.URL).Lookup(context.Background(), "cat")
			if entry.Transcription != tt.want {
				t.Errorf("got %q, want %q", entry.Transcription, tt.want)
			}
		})
	}
}

func TestLookup_LowercasesKey(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"phonetics":[{"text":"/ˈhɛloʊ/"}]}]`))
	}))
	defer srv.Close()

	entry := NewClient(srv.URL+"/api/v2/entries/en/").Lookup(context.Background(), "Hello")
	if gotPath != "/api/v2/entries/en/hello" {
		t.Errorf("path: got %s, want /api/v2/entries/en/hello", gotPath)
	}
	if entry.Word != "Hello" {
		t.Errorf("Word should keep its original case, got %q", entry.Word)
	}
}

func TestLookup_NotFoundIsSentinel(t *testing.T) {
	srv := dictionaryServer(t, nil)

	entry := NewClient(srv.URL).Lookup(context.Background(), "qwzx")
	if entry.Found() {
		t.Errorf("expected sentinel, got %q", entry.Transcription)
	}
}

func TestLookupAll_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	entries := NewClient(url).LookupAll(context.Background(), []string{"cat", "dog"})

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for i, want := range []string{"cat", "dog"} {
		if entries[i].Word != want {
			t.Errorf("entries[%d].Word: got %q, want %q", i, entries[i].Word, want)
		}
		if entries[i].Transcription != NoTranscription {
			t.Errorf("entries[%d].Transcription: got %q, want sentinel", i, entries[i].Transcription)
		}
	}
}

func TestLookupAll_PreservesInputOrder(t *testing.T) {
	// alpha answers last, gamma first
	delays := map[string]time.Duration{
		"alpha": 120 * time.Millisecond,
		"beta":  60 * time.Millisecond,
		"gamma": 0,
	}

	var mu sync.Mutex
	var completion []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		word := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		time.Sleep(delays[word])
		mu.Lock()
		completion = append(completion, word)
		mu.Unlock()
		w.Write([]byte(`[{"phonetics":[{"text":"/` + word + `/"}]}]`))
	}))
	defer srv.Close()

	words := []string{"alpha", "beta", "gamma"}
	entries := NewClient(srv.URL, WithConcurrency(3)).LookupAll(context.Background(), words)

	for i, w := range words {
		if entries[i].Word != w {
			t.Errorf("entries[%d].Word: got %q, want %q", i, entries[i].Word, w)
		}
		if entries[i].Transcription != "/"+w+"/" {
			t.Errorf("entries[%d].Transcription: got %q", i, entries[i].Transcription)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	t.Logf("completion order: %v", completion)
}

func TestLookupAll_MixedResultsAndSimplify(t *testing.T) {
	srv := dictionaryServer(t, map[string]string{
		"red":  `[{"phonetics":[{"text":"/ɹɛd/"}]}]`,
		"stop": `[{"phonetics":[{"text":"/stɑp̚/"}]}]`,
		"uh":   `[{"phonetics":[{"text":"/ʌʔʌ/"}]}]`,
	})

	entries := NewClient(srv.URL).LookupAll(context.Background(), []string{"red", "zzzz", "stop", "uh"})

	want := []Entry{
		{Word: "red", Transcription: "/rɛd/"},
		{Word: "zzzz", Transcription: NoTranscription},
		{Word: "stop", Transcription: "/stɑp/"},
		{Word: "uh", Transcription: "/ʌʌ/"},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d]: got %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestLookupAll_Empty(t *testing.T) {
	entries := NewClient("http://127.0.0.1:0").LookupAll(context.Background(), nil)
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/ɹʌn/", "/rʌn/"},
		{"/kæp̚/", "/kæp/"},
		{"/ʔoʊ/", "/oʊ/"},
		{"/həˈloʊ/", "/həˈloʊ/"},
		{NoTranscription, NoTranscription},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Simplify(tt.in); got != tt.want {
			t.Errorf("Simplify(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
