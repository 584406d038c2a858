// Package githubtest provides an in-memory fake of the GitHub gists REST API.
package githubtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-github/v72/github"
)

// Defaults used by NewServer.
const (
	DefaultToken = "test-token"
	DefaultLogin = "tester"
)

// Request records a call received by the fake.
type Request struct {
	Method string
	Path   string
}

type failure struct {
	method string
	path   string
	status int
}

// Server is a fake gists API backed by an in-memory store.
type Server struct {
	*httptest.Server

	Token string
	Login string

	mu       sync.Mutex
	gists    map[string]*github.Gist
	order    []string
	nextID   int
	failures []failure
	requests []Request
	// truncated maps "id/name" to the number of bytes single-gist responses keep.
	truncated map[string]int
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	server := &Server{
		Token: DefaultToken,
		Login: DefaultLogin,
		gists:     map[string]*github.Gist{},
		truncated: map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gists", server.handleListOwn)
	mux.HandleFunc("GET /users/{user}/gists", server.handleListUser)
	mux.HandleFunc("POST /gists", server.handleCreate)
	mux.HandleFunc("GET /gists/{id}", server.handleGet)
	mux.HandleFunc("PATCH /gists/{id}", server.handleEdit)
	mux.HandleFunc("DELETE /gists/{id}", server.handleDelete)
	mux.HandleFunc("POST /gists/{id}/forks", server.handleFork)
	mux.HandleFunc("GET /raw/{id}/{name}", server.handleRaw)

	server.Server = httptest.NewServer(server.middleware(mux))
	t.Cleanup(server.Close)

	return server
}

// APIURL returns the base URL to hand to the client.
func (s *Server) APIURL() string {
	return s.URL + "/"
}

// Seed stores a gist owned by owner and returns its id.
func (s *Server) Seed(owner, description string, public bool, files map[string]string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	gist := &github.Gist{
		Description: github.Ptr(description),
		Public:      github.Ptr(public),
		Owner:       &github.User{Login: github.Ptr(owner)},
		Files:       map[github.GistFilename]github.GistFile{},
	}

	for name, content := range files {
		gist.Files[github.GistFilename(name)] = newFile(name, content)
	}

	return s.store(gist)
}

// Truncate makes single-gist responses cut file name of gist id after limit
// bytes while still reporting its full size. The full content stays available
// at the file's raw URL, which points back at this server.
func (s *Server) Truncate(id, name string, limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gist, ok := s.gists[id]
	if !ok {
		return
	}

	file, ok := gist.Files[github.GistFilename(name)]
	if !ok {
		return
	}

	file.RawURL = github.Ptr(s.rawURL(id, name))
	gist.Files[github.GistFilename(name)] = file
	s.truncated[id+"/"+name] = limit
}

// Gist returns a copy of the stored gist.
func (s *Server) Gist(id string) (*github.Gist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gist, ok := s.gists[id]
	if !ok {
		return nil, false
	}

	return clone(gist), true
}

// Len returns the number of stored gists.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.gists)
}

// FailNext makes the next request matching method and path answer with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// CountRequests returns how many requests used method.
func (s *Server) CountRequests(method string) int {
	count := 0

	for _, request := range s.Requests() {
		if request.Method == method {
			count++
		}
	}

	return count
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path})

		for i, f := range s.failures {
			if f.method == r.Method && f.path == r.URL.Path {
				s.failures = slices.Delete(s.failures, i, i+1)
				s.mu.Unlock()
				writeError(w, f.status, http.StatusText(f.status))

				return
			}
		}
		s.mu.Unlock()

		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(strings.TrimPrefix(auth, "Bearer "), "token ")

		if auth == "" || token != s.Token {
			writeError(w, http.StatusUnauthorized, "Bad credentials")

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListOwn(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, s.Login, true)
}

func (s *Server) handleListUser(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, r.PathValue("user"), false)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, owner string, includePrivate bool) {
	s.mu.Lock()

	var matched []*github.Gist

	for _, id := range s.order {
		gist := s.gists[id]
		if gist.GetOwner().GetLogin() != owner {
			continue
		}

		if !includePrivate && !gist.GetPublic() {
			continue
		}

		listed := clone(gist)
		for name, file := range listed.Files {
			file.Content = nil
			listed.Files[name] = file
		}

		matched = append(matched, listed)
	}
	s.mu.Unlock()

	perPage := queryInt(r, "per_page", 30)
	page := queryInt(r, "page", 1)

	start := min((page-1)*perPage, len(matched))
	end := min(start+perPage, len(matched))

	if end < len(matched) {
		next := *r.URL
		query := next.Query()
		query.Set("page", strconv.Itoa(page+1))
		query.Set("per_page", strconv.Itoa(perPage))
		next.RawQuery = query.Encode()
		w.Header().Set("Link", fmt.Sprintf(`<%s%s>; rel="next"`, s.URL, next.RequestURI()))
	}

	writeJSON(w, http.StatusOK, matched[start:end])
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	gist, ok := s.gists[r.PathValue("id")]

	var body *github.Gist
	if ok {
		body = clone(gist)
		s.applyTruncation(body)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")

		return
	}

	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input github.Gist

	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Problems parsing JSON")

		return
	}

	if len(input.Files) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "Validation Failed")

		return
	}

	gist := &github.Gist{
		Description: github.Ptr(input.GetDescription()),
		Public:      github.Ptr(input.GetPublic()),
		Owner:       &github.User{Login: github.Ptr(s.Login)},
		Files:       map[github.GistFilename]github.GistFile{},
	}

	for name, file := range input.Files {
		if file.GetContent() == "" {
			writeError(w, http.StatusUnprocessableEntity, "Validation Failed")

			return
		}

		gist.Files[name] = newFile(string(name), file.GetContent())
	}

	s.mu.Lock()
	s.store(gist)
	body := clone(gist)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, body)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Description *string                     `json:"description"`
		Files       map[string]*github.GistFile `json:"files"`
	}

	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Problems parsing JSON")

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gist, ok := s.gists[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")

		return
	}

	if gist.GetOwner().GetLogin() != s.Login {
		writeError(w, http.StatusNotFound, "Not Found")

		return
	}

	if input.Description != nil {
		gist.Description = input.Description
	}

	for name, file := range input.Files {
		delete(s.truncated, gist.GetID()+"/"+name)

		if file == nil {
			delete(gist.Files, github.GistFilename(name))

			continue
		}

		gist.Files[github.GistFilename(name)] = newFile(name, file.GetContent())
	}

	gist.UpdatedAt = &github.Timestamp{Time: time.Now().UTC()}

	writeJSON(w, http.StatusOK, clone(gist))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")

	gist, ok := s.gists[id]
	if !ok || gist.GetOwner().GetLogin() != s.Login {
		writeError(w, http.StatusNotFound, "Not Found")

		return
	}

	delete(s.gists, id)
	s.order = slices.DeleteFunc(s.order, func(candidate string) bool { return candidate == id })

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFork(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.gists[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")

		return
	}

	if source.GetOwner().GetLogin() == s.Login {
		writeError(w, http.StatusUnprocessableEntity, "You cannot fork your own gist")

		return
	}

	fork := clone(source)
	fork.Owner = &github.User{Login: github.Ptr(s.Login)}
	s.store(fork)

	writeJSON(w, http.StatusCreated, clone(fork))
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()

	var (
		content string
		found   bool
	)

	if gist, ok := s.gists[r.PathValue("id")]; ok {
		var file github.GistFile

		file, found = gist.Files[github.GistFilename(r.PathValue("name"))]
		content = file.GetContent()
	}
	s.mu.Unlock()

	if !found {
		http.NotFound(w, r)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(content))
}

// applyTruncation cuts the contents of body the way the API does for large
// files. The caller must hold s.mu.
func (s *Server) applyTruncation(body *github.Gist) {
	for name, file := range body.Files {
		limit, ok := s.truncated[body.GetID()+"/"+string(name)]
		if !ok || limit >= len(file.GetContent()) {
			continue
		}

		file.Content = github.Ptr(file.GetContent()[:limit])
		body.Files[name] = file
	}
}

func (s *Server) rawURL(id, name string) string {
	return s.URL + "/raw/" + id + "/" + url.PathEscape(name)
}

// store assigns an id and timestamps. The caller must hold s.mu or own s exclusively.
func (s *Server) store(gist *github.Gist) string {
	s.nextID++
	id := fmt.Sprintf("%032x", s.nextID)
	now := time.Now().UTC().Truncate(time.Second)

	gist.ID = github.Ptr(id)
	gist.HTMLURL = github.Ptr(s.URL + "/gist/" + id)
	gist.GitPullURL = github.Ptr(s.URL + "/gist/" + id + ".git")
	gist.CreatedAt = &github.Timestamp{Time: now}
	gist.UpdatedAt = &github.Timestamp{Time: now}

	s.gists[id] = gist
	s.order = append(s.order, id)

	return id
}

func newFile(name, content string) github.GistFile {
	return github.GistFile{
		Filename: github.Ptr(name),
		Content:  github.Ptr(content),
		Size:     github.Ptr(len(content)),
		Language: github.Ptr("Text"),
		RawURL:   github.Ptr("https://gist.githubusercontent.com/raw/" + name),
	}
}

func clone(gist *github.Gist) *github.Gist {
	copied := *gist
	copied.Files = make(map[github.GistFilename]github.GistFile, len(gist.Files))

	for name, file := range gist.Files {
		copied.Files[name] = file
	}

	return &copied
}

func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
