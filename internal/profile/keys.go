package profile

// DefaultCompanyKeys maps company names in the bundled profile to the stable
// identity used in translation keys (data.positions.<key>.*).
var DefaultCompanyKeys = map[string]string{
	"Cerrado Tecnologia":                      "cerrado",
	"Medvia Sistemas Médicos":                 "medvia",
	"Pixelbox Digital":                        "pixelbox",
	"Tribunal Regional de Contas":             "trc",
	"Instituto Federal do Planalto (Oficial)": "ifp",
}

// DefaultProjectKeys maps featured project names to their translation identity
// (data.featuredProjects.<key>.*).
var DefaultProjectKeys = map[string]string{
	"Calculadoras Medvia": "calculadoras-medvia",
	"MoneySuite":          "moneysuite",
	"SIMP — TRC":          "simp-trc",
	"Deep Fake Detection": "deep-fake-detection",
}

// CompanyKey returns the translation identity for a position. An explicit Key
// on the entry wins over the name map.
func CompanyKey(pos Position, keys map[string]string) (string, bool) {
	if pos.Key != "" {
		return pos.Key, true
	}
	k, ok := keys[pos.CompanyName]
	return k, ok
}

// ProjectKey returns the translation identity for a featured project.
func ProjectKey(proj Project, keys map[string]string) (string, bool) {
	if proj.Key != "" {
		return proj.Key, true
	}
	k, ok := keys[proj.Name]
	return k, ok
}
