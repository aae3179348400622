package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the page bindings. Overlays handle their own keys.
type keyMap struct {
	Quit        key.Binding
	Down        key.Binding
	Up          key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	Home        key.Binding
	End         key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	ScrollTop   key.Binding
	Menu        key.Binding
	Jump        key.Binding
	Help        key.Binding
	Plan        key.Binding
	Assess      key.Binding
	PrimaryCTA  key.Binding
	SecondCTA   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "bajar")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "subir")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("espacio", "avanzar página")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("b", "retroceder página")),
		Home:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "principio")),
		End:         key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "final")),
		NextSection: key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]", "sección siguiente")),
		PrevSection: key.NewBinding(key.WithKeys("[", "N"), key.WithHelp("[", "sección anterior")),
		ScrollTop:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "volver al inicio")),
		Menu:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menú")),
		Jump:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar sección")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Plan:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "plan personal")),
		Assess:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoevaluación")),
		PrimaryCTA:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "acción principal")),
		SecondCTA:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "acción secundaria")),
	}
}

// sectionDigit maps "1".."9" to a section index.
func sectionDigit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
