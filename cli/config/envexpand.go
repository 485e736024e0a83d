// Package config handles advent.yaml loading for the advent commands.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// ExpandEnv replaces environment references in input:
//
//	${VAR}           value of VAR, or empty
//	${VAR:-default}  value of VAR, or default when VAR is unset or empty
//	${VAR:?message}  value of VAR; an unset or empty VAR is an error
//
// Every missing required variable is reported in one error.
func ExpandEnv(input string) (string, error) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, op, arg := groups[1], groups[2], groups[3]
		if v := os.Getenv(name); v != "" {
			return v
		}
		switch op {
		case ":-":
			return arg
		case ":?":
			if arg == "" {
				arg = "required"
			}
			missing = append(missing, name+" ("+arg+")")
		}
		return ""
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("environment variables not set: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
