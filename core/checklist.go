package core

// LoadChecklist reads the checklist file, one entry per line
func LoadChecklist(path string, opts LoadOptions) ([]string, error) {
	return readLines(path, opts)
}
