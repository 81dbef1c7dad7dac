package view

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en"{{if eq .Theme "light"}} data-theme="light"{{end}}>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Skyline Weather</title>
<style>
:root { --bg: #0f172a; --fg: #e2e8f0; --card: #1e293b; --muted: #94a3b8; }
[data-theme="light"] { --bg: #f1f5f9; --fg: #0f172a; --card: #ffffff; --muted: #475569; }
body { background: var(--bg); color: var(--fg); font-family: system-ui, sans-serif; margin: 0; }
.container { max-width: 640px; margin: 0 auto; padding: 1.5rem; }
.card { background: var(--card); border-radius: 12px; padding: 1.25rem; margin-top: 1rem; }
.main .loading-indicator, .main .error-message, .main .weather { display: none; }
.main.loading .loading-indicator, .main.error .error-message, .main.ready .weather { display: block; }
.muted { color: var(--muted); }
.temp { font-size: 3rem; }
.forecast-list { list-style: none; padding: 0; }
.forecast-list li { display: flex; justify-content: space-between; padding: .35rem 0; }
</style>
</head>
<body>
<div class="container">
  <header>
    <form id="searchForm" action="/search" method="get">
      <input id="searchInput" name="city" type="search" placeholder="{{.Placeholder}}" autocomplete="off">
      <button type="submit">Search</button>
    </form>
    <form action="/theme/toggle" method="post">
      <button id="themeToggle" type="submit">Toggle theme</button>
    </form>
  </header>
  <main class="main {{.State}}">
    <div id="loading" class="loading-indicator card">Loading…</div>
    <div id="errorMessage" class="error-message card"><p id="errorText">{{.ErrorText}}</p></div>
    <section class="weather card">
      <h1><span id="cityName">{{.CityName}}</span> <span id="country" class="muted">{{.Country}}</span></h1>
      <div class="temp"><span id="weatherEmoji">{{.WeatherEmoji}}</span> <span id="currentTemp">{{.CurrentTemp}}</span>°</div>
      <p id="weatherDesc">{{.WeatherDesc}}</p>
      <p class="muted">Feels like <span id="feelsLike">{{.FeelsLike}}</span> · Humidity <span id="humidity">{{.Humidity}}</span> · Wind <span id="windSpeed">{{.WindSpeed}}</span></p>
      <ul id="forecastList" class="forecast-list">
      {{- range .Forecast}}
        <li>
          <span class="forecast-day">{{.Day}}</span>
          <span class="forecast-emoji">{{.Pictogram}}</span>
          <span class="forecast-temps"><span>{{.Max}}°</span> <span class="muted">{{.Min}}°</span></span>
        </li>
      {{- end}}
      </ul>
    </section>
  </main>
</div>
</body>
</html>
`))

// RenderPage writes the full HTML document for a panel snapshot.
func RenderPage(w io.Writer, v PanelView) error {
	return pageTemplate.Execute(w, v)
}
