package analysis

import (
	"path/filepath"
	"sort"
	"strings"
)

// Language represents a supported programming language.
type Language string

// Supported languages.
const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
)

var extensionToLanguage = map[string]Language{
	// Python
	".py":  LangPython,
	".pyw": LangPython,
	// JavaScript
	".js":  LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".jsx": LangJavaScript,
	// TypeScript
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
}

// DetectLanguage maps a file path to a language via its extension.
func DetectLanguage(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extensionToLanguage[ext]
	return lang, ok
}

// Extensions returns the file extensions recognized for a language.
func Extensions(lang Language) []string {
	var exts []string
	for ext, l := range extensionToLanguage {
		if l == lang {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// PrimaryExtension returns the canonical extension for a language, used when
// writing uploaded snippets to a temporary file.
func PrimaryExtension(lang Language) string {
	switch lang {
	case LangPython:
		return ".py"
	case LangJavaScript:
		return ".js"
	case LangTypeScript:
		return ".ts"
	default:
		return ""
	}
}
