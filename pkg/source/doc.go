// Package source abstracts where translation documents come from.
//
// A [Source] yields at most one translation document per language tag,
// identified by name ("en", "de", "en_US"). The [FS] implementation reads
// flat files from any fs.FS, covering both directory mode and embedded
// resource mode:
//
//	// directory on disk
//	src, err := source.NewDir("./translations", source.JSON)
//
//	// embedded resources
//	//go:embed translations
//	var translationsFS embed.FS
//	sub, _ := fs.Sub(translationsFS, "translations")
//	src, err := source.NewFS(sub, source.YAML)
//
// Expected layout, one document per language:
//
//	en.json
//	de.json
//	languages.json   (optional, reserved: code → display name)
//	_drafts.json     (underscore prefix: ignored by enumeration)
//
// Each document may carry a reserved top-level "_meta_" object whose
// "language_name" field supplies the language's display name; all other
// top-level keys are ordinary translation keys.
package source
