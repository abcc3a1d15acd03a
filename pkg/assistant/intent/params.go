package intent

import (
	"regexp"
	"strings"
)

// Tax-identifier and marker patterns. CNPJ identifies organizations
// (14 digits), CPF identifies individuals (11 digits); both accept the
// usual punctuation and are normalized to bare digits.
var (
	cnpjPattern  = regexp.MustCompile(`\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}`)
	cpfPattern   = regexp.MustCompile(`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`)
	idPattern    = regexp.MustCompile(`(?i)\b(?:id|identificador)\s*:\s*([A-Za-z0-9-]+)`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	namePattern  = regexp.MustCompile(`(?i)(?:name|nome)\s*:\s*([^,.;\n]+)`)
)

var nonDigits = regexp.MustCompile(`\D`)

// ExtractParams scans the text for every recognized parameter shape.
// Extraction never fails; absent fields are simply omitted.
func ExtractParams(text string) map[string]interface{} {
	params := make(map[string]interface{})

	remaining := text
	if m := cnpjPattern.FindString(text); m != "" {
		params["cnpj"] = nonDigits.ReplaceAllString(m, "")
		// Drop the CNPJ span so its digits cannot double as a CPF.
		remaining = strings.Replace(remaining, m, " ", 1)
	}

	if m := cpfPattern.FindString(remaining); m != "" {
		params["cpf"] = nonDigits.ReplaceAllString(m, "")
	}

	if m := idPattern.FindStringSubmatch(text); len(m) > 1 {
		params["id"] = m[1]
	}

	if m := emailPattern.FindString(text); m != "" {
		params["email"] = m
	}

	if m := namePattern.FindStringSubmatch(text); len(m) > 1 {
		params["name"] = strings.TrimSpace(m[1])
	}

	return params
}
