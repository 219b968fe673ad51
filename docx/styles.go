package docx

// styleResolver answers whether a paragraph style renders bold, following
// basedOn inheritance. Only boldness is resolved; the extraction heuristics
// care about emphasis, not the full character model.
type styleResolver struct {
	styles   map[string]*styleDefXML
	resolved map[string]bool
}

func newStyleResolver(styles *stylesXML) *styleResolver {
	sr := &styleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]bool),
	}
	if styles == nil {
		return sr
	}
	for i := range styles.Styles {
		s := &styles.Styles[i]
		sr.styles[s.StyleID] = s
	}
	return sr
}

// bold reports whether the given style ID resolves to bold text. The most
// derived style that declares <w:b> wins; the chain is cycle-safe.
func (sr *styleResolver) bold(styleID string) bool {
	if styleID == "" {
		return false
	}
	if v, ok := sr.resolved[styleID]; ok {
		return v
	}

	result := false
	visited := make(map[string]bool)
	for id := styleID; id != "" && !visited[id]; {
		visited[id] = true
		def, ok := sr.styles[id]
		if !ok {
			break
		}
		if def.RPr.Bold.present() {
			result = def.RPr.Bold.value()
			break
		}
		id = def.BasedOn.Val
	}

	sr.resolved[styleID] = result
	return result
}
