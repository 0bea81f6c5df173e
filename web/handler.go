// Package web wires the joke site routes: the login and registration
// form, the joke index, the joke page, and the submit-a-joke action.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/below-1/remix-jokes/auth"
	"github.com/below-1/remix-jokes/internal/logutil"
	"github.com/below-1/remix-jokes/jokes"
	"github.com/below-1/remix-jokes/session"
	"github.com/cespare/xxhash/v2"
	"github.com/julienschmidt/httprouter"
)

type (
	handler struct {
		jokes    *jokes.CachedJokes
		flow     *auth.Flow
		sessions *session.Manager
		render   *Renderer
	}
)

// AsHandler builds the site router on top of the given collaborators.
func AsHandler(store *jokes.Store, flow *auth.Flow, sessions *session.Manager) http.Handler {
	h := &handler{
		jokes:    jokes.NewCachedJokes(store),
		flow:     flow,
		sessions: sessions,
		render:   NewRenderer(),
	}
	router := httprouter.New()
	router.HandlerFunc("GET", "/", h.home)
	router.HandlerFunc("GET", "/login", h.loginPage)
	router.HandlerFunc("POST", "/login", h.loginAction)
	router.HandlerFunc("POST", "/logout", h.logoutAction)
	router.HandlerFunc("GET", "/jokes", h.jokeIndex)
	// httprouter cannot mix /jokes/new with /jokes/:jokeId, the
	// param route dispatches the static segment itself
	router.GET("/jokes/:jokeId", h.jokePage)
	router.POST("/jokes/:jokeId", h.jokeAction)
	return router
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *handler) page(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	buf, err := h.render.Render(name, data)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Str("page", name).Msg("Unable to render page")
		http.Error(w, "unable to render page, server is mis-behaving", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(status)
	w.Write(buf)
}

func (h *handler) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	if wantsJSON(r) {
		writeJSON(w, status, map[string]string{"error": message})
		return
	}
	h.page(w, r, status, "error", errorData{Title: "Uh-Oh!", Message: message})
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/jokes", http.StatusFound)
}

func (h *handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "login", loginData{
		RedirectTo: r.URL.Query().Get("redirectTo"),
		Action:     &auth.ActionData{},
	})
}

func (h *handler) badLogin(w http.ResponseWriter, r *http.Request, redirectTo string, data *auth.ActionData) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusBadRequest, data)
		return
	}
	h.page(w, r, http.StatusBadRequest, "login", loginData{
		RedirectTo: redirectTo,
		Action:     data,
	})
}

func (h *handler) loginAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badLogin(w, r, "", auth.Malformed())
		return
	}
	form, ok := auth.ParseLoginForm(r.PostForm)
	if !ok {
		h.badLogin(w, r, r.PostForm.Get("redirectTo"), auth.Malformed())
		return
	}
	user, data, err := h.flow.Submit(r.Context(), form)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Login flow failed")
		h.errorPage(w, r, http.StatusInternalServerError, "Something unexpected went wrong. Sorry about that.")
		return
	}
	if data != nil {
		h.badLogin(w, r, form.RedirectTo, data)
		return
	}
	cookie, err := h.sessions.Issue(user.ID)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to issue session")
		h.errorPage(w, r, http.StatusInternalServerError, "Something unexpected went wrong. Sorry about that.")
		return
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, form.RedirectTo, http.StatusFound)
}

func (h *handler) logoutAction(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.Destroy())
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *handler) jokeIndex(w http.ResponseWriter, r *http.Request) {
	all, err := h.jokes.ListJokes(r.Context())
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to list jokes")
		h.errorPage(w, r, http.StatusInternalServerError, "Something unexpected went wrong. Sorry about that.")
		return
	}
	h.page(w, r, http.StatusOK, "jokes", jokeIndexData{Jokes: all})
}

func (h *handler) jokePage(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("jokeId")
	if id == "new" {
		h.newJokePage(w, r)
		return
	}
	joke, err := h.jokes.GetJoke(r.Context(), id)
	var notFound jokes.JokeNotFound
	if errors.As(err, &notFound) {
		h.errorPage(w, r, http.StatusNotFound, "Joke not found")
		return
	} else if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Str("joke", id).Msg("Unable to load joke")
		h.errorPage(w, r, http.StatusInternalServerError, "Something unexpected went wrong. Sorry about that.")
		return
	}
	buf, err := h.render.Render("joke", jokeData{Joke: joke})
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Str("joke", id).Msg("Unable to render joke")
		http.Error(w, "unable to render page, server is mis-behaving", http.StatusInternalServerError)
		return
	}
	etag := fmt.Sprintf(`"%x"`, xxhash.Sum64(buf))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf)
}

func (h *handler) newJokePage(w http.ResponseWriter, r *http.Request) {
	_, err := h.sessions.RequireUserID(r)
	if err != nil {
		target := "/login?" + url.Values{"redirectTo": []string{"/jokes/new"}}.Encode()
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	h.page(w, r, http.StatusOK, "newjoke", newJokeData{Action: &auth.ActionData{}})
}

func (h *handler) badJoke(w http.ResponseWriter, r *http.Request, data *auth.ActionData) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusBadRequest, data)
		return
	}
	h.page(w, r, http.StatusBadRequest, "newjoke", newJokeData{Action: data})
}

func (h *handler) jokeAction(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if params.ByName("jokeId") != "new" {
		h.errorPage(w, r, http.StatusNotFound, "Joke not found")
		return
	}
	// the session check runs before the body is even parsed, an
	// unauthenticated request must not reach the store
	userID, err := h.sessions.RequireUserID(r)
	if err != nil {
		h.errorPage(w, r, http.StatusUnauthorized, "You must be logged in to add a joke")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.badJoke(w, r, &auth.ActionData{FormError: "Form not submitted correctly"})
		return
	}
	form, ok := auth.ParseJokeForm(r.PostForm)
	if !ok {
		h.badJoke(w, r, &auth.ActionData{FormError: "Form not submitted correctly"})
		return
	}
	if data := form.Validate(); data != nil {
		h.badJoke(w, r, data)
		return
	}
	joke, err := h.jokes.CreateJoke(r.Context(), userID, form.Name, form.Content)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to create joke")
		h.errorPage(w, r, http.StatusInternalServerError, "Something unexpected went wrong. Sorry about that.")
		return
	}
	http.Redirect(w, r, "/jokes/"+joke.ID, http.StatusFound)
}
