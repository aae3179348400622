package export

const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Guide.Brand.Name}} · {{.Profile.Title}}</title>
<style>
:root { --primary: #7c3aed; --text: #1f2937; --muted: #6b7280; --surface: #f8fafc; --border: #e5e7eb; }
{{- if eq .Profile.Variant "clasica"}}
:root { --primary: #2563eb; }
{{- else if eq .Profile.Variant "moderna"}}
:root { --primary: #db2777; }
{{- end}}
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; color: var(--text); background: var(--surface); }
header { position: sticky; top: 0; background: #fff; border-bottom: 1px solid var(--border); padding: .75rem 1.5rem; display: flex; justify-content: space-between; align-items: center; gap: 1rem; flex-wrap: wrap; }
header .eyebrow { font-size: .75rem; text-transform: uppercase; color: var(--muted); }
nav a { margin-left: .5rem; padding: .25rem .75rem; border-radius: 999px; color: var(--muted); text-decoration: none; }
nav a.active { background: var(--primary); color: #fff; }
#progress { position: fixed; top: 0; left: 0; height: 3px; background: var(--primary); width: 0; }
main { max-width: 60rem; margin: 0 auto; padding: 0 1.5rem; }
section { padding: 3rem 0; border-bottom: 1px solid var(--border); }
.eyebrow { color: var(--primary); font-weight: 600; text-transform: uppercase; font-size: .8rem; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(16rem, 1fr)); gap: 1rem; }
.card { background: #fff; border: 1px solid var(--border); border-radius: .75rem; padding: 1rem; }
.tone-success { border-color: #16a34a; } .tone-warning { border-color: #d97706; } .tone-info { border-color: #0284c7; }
.btn { display: inline-block; padding: .5rem 1.25rem; border-radius: 999px; border: 1px solid var(--primary); color: var(--primary); text-decoration: none; }
.btn.primary { background: var(--primary); color: #fff; }
#top { position: fixed; right: 1.5rem; bottom: 1.5rem; display: none; }
footer { text-align: center; padding: 2rem; color: var(--muted); }
.variants a { margin: 0 .25rem; }
</style>
</head>
<body>
{{- if .Profile.TrackProgress}}
<div id="progress"></div>
{{- end}}
<header>
  <div>
    <div class="eyebrow">{{.Guide.Brand.Eyebrow}}</div>
    <strong>{{.Guide.Brand.Icon}} {{.Guide.Brand.Name}}</strong>
  </div>
  <nav>
  {{- range .Guide.Sections}}
    <a href="#{{.ID}}" data-section="{{.ID}}">{{.Icon}} {{.Label}}</a>
  {{- end}}
  </nav>
</header>
<main>
{{- $d := .}}
{{- range .Guide.Sections}}
{{- if eq .ID "inicio"}}
<section id="inicio">
  {{- with $d.Guide.Hero}}
  <p class="eyebrow">{{.Eyebrow}}</p>
  <h1>{{.Title}}</h1>
  <p>{{.Lead}}</p>
  <div class="grid">
    {{- range .Highlights}}
    <div class="card"><h3>{{.Icon}} {{.Title}}</h3><p>{{.Description}}</p></div>
    {{- end}}
  </div>
  <p>
    {{- range .Stats}}
    <strong>{{.Value}}</strong> {{.Label}}&nbsp;&nbsp;
    {{- end}}
  </p>
  <p>
    {{- range .Actions}}
    <a class="btn{{if .Primary}} primary{{end}}" href="#{{.Target}}">{{.Label}}</a>
    {{- end}}
  </p>
  {{- end}}
</section>
{{- else if eq .ID "definicion"}}
<section id="definicion">
  {{- with $d.Guide.Definition}}
  <p class="eyebrow">{{.Eyebrow}}</p>
  <h2>{{.Title}}</h2>
  {{$d.DefinitionLead}}
  {{$d.DefinitionBody}}
  <div class="grid">
    {{- range .Prompts}}
    <div class="card">✎ {{.}}</div>
    {{- end}}
  </div>
  <div class="grid">
    <div class="card"><h3>Mapa de navegación</h3><ul>
      {{- range .NavigationMap}}
      <li><a href="#{{.Section}}">{{.Section}}</a>: {{.Summary}}</li>
      {{- end}}
    </ul></div>
    <div class="card"><h3>Recursos rápidos</h3><ul>
      {{- range .Resources}}
      <li>{{.}}</li>
      {{- end}}
    </ul></div>
  </div>
  <div class="card"><h3>Glosario breve</h3>{{$d.Glossary}}</div>
  {{- end}}
</section>
{{- else if eq .ID "sintomas"}}
<section id="sintomas">
  {{- with $d.Guide.Symptoms}}
  <p class="eyebrow">{{.Eyebrow}}</p>
  <h2>{{.Title}}</h2>
  <p>{{.Lead}}</p>
  <div class="grid">
    {{- range .Cards}}
    <div class="card"><h3>{{.Icon}} {{.Title}}</h3><p>{{.Description}}</p></div>
    {{- end}}
  </div>
  {{- end}}
</section>
{{- else if eq .ID "causas"}}
<section id="causas">
  {{- with $d.Guide.Causes}}
  <div class="grid">
    <div class="card"><h2>{{.CausesTitle}}</h2><ul>
      {{- range .Causes}}
      <li>{{.}}</li>
      {{- end}}
    </ul></div>
    <div class="card tone-warning"><h2>{{.ConsequencesTitle}}</h2><ul>
      {{- range .Consequences}}
      <li>{{.}}</li>
      {{- end}}
    </ul></div>
  </div>
  <div class="card"><h3>{{.Impact.Icon}} {{.Impact.Title}}</h3><p>{{.Impact.Description}}</p></div>
  {{- end}}
</section>
{{- else if eq .ID "tips"}}
<section id="tips">
  {{- with $d.Guide.Tips}}
  <p class="eyebrow">{{.Eyebrow}}</p>
  <h2>{{.Title}}</h2>
  <p>{{.Lead}}</p>
  <div class="grid">
    {{- range .Cards}}
    <div class="card"><h3>{{.Icon}} {{.Title}}</h3><p>{{.Description}}</p></div>
    {{- end}}
  </div>
  <div class="grid">
    {{- range .Feedback}}
    <div class="card tone-{{.Tone}}"><h3>{{.Icon}} {{.Title}}</h3><p>{{.Description}}</p></div>
    {{- end}}
  </div>
  {{- end}}
</section>
{{- else if eq .ID "experiencia"}}
<section id="experiencia">
  {{- with $d.Guide.Experience}}
  <p class="eyebrow">{{.Eyebrow}}</p>
  <h2>{{.Title}}</h2>
  <p>{{.Intro}}</p>
  <div class="grid">
    <div class="card"><h3>Checklist de apoyo</h3><ul>
      {{- range .Checklist}}
      <li>{{.}}</li>
      {{- end}}
    </ul></div>
    <div class="card"><h3>{{.VideoTitle}}</h3>{{if .VideoURL}}<a href="{{.VideoURL}}">▶ {{.VideoURL}}</a>{{end}}</div>
  </div>
  {{- if $d.Profile.SelfAssessment}}
  <div class="card" id="assessment">
    <h3>Autoevaluación <span id="completion">0%</span></h3>
    {{- range .Situations}}
    <label><input type="checkbox"> {{.}}</label><br>
    {{- end}}
    {{- range .Reactions}}
    <label><input type="checkbox"> {{.}}</label><br>
    {{- end}}
  </div>
  {{- end}}
  <p><em>{{.Hint}}</em></p>
  {{- end}}
</section>
{{- end}}
{{- end}}
</main>
<footer>
  <p>{{.Guide.Footer.Text}}</p>
  <p class="variants">
  {{- range .Variants}}
    <a href="{{pageFile .}}">{{.}}</a>
  {{- end}}
  </p>
</footer>
<a id="top" class="btn primary" href="#inicio">↑ {{.Guide.Footer.BackLabel}}</a>
<script>
(function () {
  var lookahead = {{.Profile.Lookahead}}, threshold = {{.Profile.Threshold}};
  var links = document.querySelectorAll("nav a[data-section]");
  var active = "";
  function update() {
    var y = window.scrollY, probe = y + lookahead;
    for (var i = 0; i < links.length; i++) {
      var s = document.getElementById(links[i].dataset.section);
      if (s && probe >= s.offsetTop && probe < s.offsetTop + s.offsetHeight) {
        active = links[i].dataset.section;
        break;
      }
    }
    links.forEach(function (a) { a.classList.toggle("active", a.dataset.section === active); });
    document.getElementById("top").style.display = y > threshold ? "inline-block" : "none";
    var bar = document.getElementById("progress");
    if (bar) {
      var max = document.documentElement.scrollHeight - window.innerHeight;
      bar.style.width = (max > 0 ? Math.min(100, 100 * y / max) : 0) + "%";
    }
  }
  var boxes = document.querySelectorAll("#assessment input");
  boxes.forEach(function (b) {
    b.addEventListener("change", function () {
      var n = document.querySelectorAll("#assessment input:checked").length;
      document.getElementById("completion").textContent = Math.round(100 * n / boxes.length) + "%";
    });
  });
  window.addEventListener("scroll", update, { passive: true });
  update();
})();
</script>
</body>
</html>
`
