package prompt

import (
	"strings"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// genericStyleGuide is the fallback instruction used when no template
// matches the (style, language) combination. An unmatched combination is
// never an error.
const genericStyleGuide = "Standard documentation format for the detected language."

const googleStyleGuide = `Google Style Python Docstring:
'''
Brief description of the function.

Args:
    param1 (type): Description of param1.
    param2 (type): Description of param2.

Returns:
    type: Description of return value.

Raises:
    ExceptionType: Description of when this exception is raised.

Example:
    Example usage of the function.
'''`

const numpyStyleGuide = `NumPy Style Python Docstring:
'''
Brief description of the function.

Parameters
----------
param1 : type
    Description of param1.
param2 : type
    Description of param2.

Returns
-------
type
    Description of return value.

Raises
------
ExceptionType
    Description of when this exception is raised.

Examples
--------
Example usage of the function.
'''`

const sphinxStyleGuide = `Sphinx Style Python Docstring:
'''
Brief description of the function.

:param param1: Description of param1.
:type param1: type
:param param2: Description of param2.
:type param2: type
:returns: Description of return value.
:rtype: type
:raises ExceptionType: Description of when this exception is raised.
'''`

const jsdocStyleGuide = `JSDoc Style:
/**
 * Brief description of the function.
 *
 * @param {type} param1 - Description of param1.
 * @param {type} param2 - Description of param2.
 * @returns {type} Description of return value.
 * @throws {ExceptionType} Description of when this exception is thrown.
 * @example
 * // Example usage
 * const result = functionName(param1, param2);
 */`

// styleGuide selects the template for a style and the language implied by
// the element's signature syntax.
func styleGuide(style model.Style, signature string) string {
	switch signatureLanguage(signature) {
	case "python":
		switch style {
		case model.StyleGoogle:
			return googleStyleGuide
		case model.StyleNumpy:
			return numpyStyleGuide
		case model.StyleSphinx:
			return sphinxStyleGuide
		}
	case "javascript":
		if style == model.StyleJSDoc {
			return jsdocStyleGuide
		}
	}
	return genericStyleGuide
}

// signatureLanguage guesses the source language from declaration syntax.
// Python declarations end with a colon; JavaScript-family ones carry
// function keywords or braces.
func signatureLanguage(signature string) string {
	s := strings.TrimSpace(signature)
	switch {
	case strings.HasPrefix(s, "def "):
		return "python"
	case strings.HasPrefix(s, "class ") && strings.HasSuffix(s, ":"):
		return "python"
	case strings.HasPrefix(s, "function ") || strings.HasPrefix(s, "async function "):
		return "javascript"
	case strings.HasPrefix(s, "class "):
		return "javascript"
	case strings.Contains(s, "=>"):
		return "javascript"
	default:
		return ""
	}
}
