package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/below-1/remix-jokes/auth"
	"github.com/below-1/remix-jokes/jokes"
)

type (
	Renderer struct {
		pages *template.Template
	}

	loginData struct {
		RedirectTo string
		Action     *auth.ActionData
	}

	jokeData struct {
		Joke *jokes.Joke
	}

	jokeIndexData struct {
		Jokes []jokes.Joke
	}

	newJokeData struct {
		Action *auth.ActionData
	}

	errorData struct {
		Title   string
		Message string
	}
)

const layout = `{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.}}</title>
</head>
<body>{{end}}
{{define "footer"}}</body>
</html>{{end}}`

const loginPage = `{{template "header" "Remix Jokes | Login"}}
<div class="container">
<div class="content">
<h1>Login</h1>
{{with .Action}}{{with .FormError}}<p class="form-validation-error" role="alert">{{.}}</p>{{end}}{{end}}
<form method="post" action="/login">
<input type="hidden" name="redirectTo" value="{{.RedirectTo}}">
<fieldset>
<legend class="sr-only">Login or Register?</legend>
<label><input type="radio" name="loginType" value="login"{{if ne (index .Action.Fields "loginType") "register"}} checked{{end}}> Login</label>
<label><input type="radio" name="loginType" value="register"{{if eq (index .Action.Fields "loginType") "register"}} checked{{end}}> Register</label>
</fieldset>
<div>
<label for="username-input">Username</label>
<input type="text" id="username-input" name="username" value="{{index .Action.Fields "username"}}">
{{with index .Action.FieldErrors "username"}}<p class="form-validation-error" role="alert">{{.}}</p>{{end}}
</div>
<div>
<label for="password-input">Password</label>
<input type="password" id="password-input" name="password" value="{{index .Action.Fields "password"}}">
{{with index .Action.FieldErrors "password"}}<p class="form-validation-error" role="alert">{{.}}</p>{{end}}
</div>
<button type="submit" class="button">Submit</button>
</form>
</div>
<div class="links">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/jokes">Jokes</a></li>
</ul>
</div>
</div>
{{template "footer"}}`

const jokeIndexPage = `{{template "header" "Remix Jokes"}}
<h1>Jokes</h1>
<p><a href="/jokes/new">Add your own hilarious joke</a></p>
<ul>
{{range .Jokes}}<li><a href="/jokes/{{.ID}}">{{.Name}}</a></li>
{{end}}</ul>
<form method="post" action="/logout"><button type="submit">Logout</button></form>
{{template "footer"}}`

const jokePage = `{{template "header" "Remix Jokes"}}
<div>
<p>Here's your hilarious joke:</p>
<p>{{.Joke.Content}}</p>
<a href="/jokes/{{.Joke.ID}}">{{.Joke.Name}} Permalink</a>
</div>
{{template "footer"}}`

const newJokePage = `{{template "header" "Remix Jokes | New joke"}}
<div>
<p>Add your own hilarious joke</p>
{{with .Action}}{{with .FormError}}<p class="form-validation-error" role="alert">{{.}}</p>{{end}}{{end}}
<form method="post" action="/jokes/new">
<div>
<label>Name: <input type="text" name="name" value="{{index .Action.Fields "name"}}"></label>
{{with index .Action.FieldErrors "name"}}<p class="form-validation-error" role="alert">{{.}}</p>{{end}}
</div>
<div>
<label>Content: <textarea name="content">{{index .Action.Fields "content"}}</textarea></label>
{{with index .Action.FieldErrors "content"}}<p class="form-validation-error" role="alert">{{.}}</p>{{end}}
</div>
<button type="submit" class="button">Add</button>
</form>
</div>
{{template "footer"}}`

const errorPage = `{{template "header" .Title}}
<div class="error-container">
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</div>
{{template "footer"}}`

func NewRenderer() *Renderer {
	pages := template.New("layout")
	template.Must(pages.Parse(layout))
	for name, src := range map[string]string{
		"login":   loginPage,
		"jokes":   jokeIndexPage,
		"joke":    jokePage,
		"newjoke": newJokePage,
		"error":   errorPage,
	} {
		template.Must(pages.New(name).Parse(src))
	}
	return &Renderer{pages: pages}
}

// Render produces the full page so callers can hash or measure the
// body before writing it out.
func (r *Renderer) Render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := r.pages.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return nil, fmt.Errorf("unable to render page %v, cause %w", name, err)
	}
	return buf.Bytes(), nil
}
