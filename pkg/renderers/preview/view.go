package preview

type pageView struct {
	Title           string       `json:"title"`
	Action          string       `json:"action"`
	Method          string       `json:"method"`
	Theme           string       `json:"theme"`
	Variant         string       `json:"variant"`
	Stylesheet      string       `json:"stylesheet"`
	StylesheetHref  string       `json:"stylesheet_href"`
	ThemeStylesheet string       `json:"theme_stylesheet"`
	CSSVars         []cssVar     `json:"css_vars"`
	FormErrors      []string     `json:"form_errors"`
	HiddenFields    []hiddenView `json:"hidden_fields"`
	Groups          []groupView  `json:"groups"`
}

type groupView struct {
	ID     string      `json:"id"`
	DOMID  string      `json:"dom_id"`
	Legend string      `json:"legend"`
	Errors []string    `json:"errors"`
	Fields []fieldView `json:"fields"`
}

type fieldView struct {
	ID      string   `json:"id"`
	Widget  string   `json:"widget"`
	Control string   `json:"control"`
	Errors  []string `json:"errors"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
