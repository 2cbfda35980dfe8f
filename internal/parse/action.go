package parse

import (
	"regexp"

	"options-tracker/internal/models"
)

// typeSuffix matches one or more trailing " Put"/" Call" words. Stripping the
// whole run keeps NormalizeAction idempotent.
var typeSuffix = regexp.MustCompile(`(?i)(\s+(put|call))+$`)

// NormalizeAction removes the option type suffix that pending orders append
// to their action ("Sell to Open Put" -> "Sell to Open") so they line up with
// history actions.
func NormalizeAction(action string) models.Action {
	if action == "" {
		return models.ActionNone
	}
	return models.Action(typeSuffix.ReplaceAllString(action, ""))
}
