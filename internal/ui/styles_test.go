package ui

import "testing"

func TestShouldUseColor(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
		want bool
	}{
		// Test stdout is never a terminal, so the default is no color.
		{"Default", map[string]string{}, false},
		{"ForceEnables", map[string]string{"CLICOLOR_FORCE": "1"}, true},
		{"NoColorWinsOverForce", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"CLIColorZeroDisables", map[string]string{"CLICOLOR": "0"}, false},
		{"ForceWinsOverCLIColorZero", map[string]string{"CLICOLOR": "0", "CLICOLOR_FORCE": "1"}, true},
		{"ForceWithWhitespace", map[string]string{"CLICOLOR_FORCE": " 1 "}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
				t.Setenv(key, "")
			}
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			if got := ShouldUseColor(); got != tc.want {
				t.Errorf("ShouldUseColor() = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestRenderStatusColorsKnownStates(t *testing.T) {
	prev := noColor
	noColor = false
	defer func() { noColor = prev }()

	for _, status := range []string{"draft", "scheduled", "published", "archived"} {
		if got := RenderStatus(status); got == status {
			t.Errorf("RenderStatus(%q) not colored", status)
		}
	}
	// Unknown states pass through unstyled.
	if got := RenderStatus("pending"); got != "pending" {
		t.Errorf("RenderStatus passed unknown state through as %q", got)
	}
}
