package testutil

import (
	"strings"
	"testing"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the captured logs contain a line with msg and
// every given key=value fragment.
func AssertLogged(t *testing.T, result *HarnessResult, msg string, fragments ...string) {
	t.Helper()

	for _, line := range strings.Split(result.LogOutput, "\n") {
		if !strings.Contains(line, msg) {
			continue
		}
		ok := true
		for _, f := range fragments {
			if !strings.Contains(line, f) {
				ok = false
				break
			}
		}
		if ok {
			return
		}
	}
	require.Failf(t, "log line not found", "no line with %q and %v in:\n%s", msg, fragments, result.LogOutput)
}

// AssertSchedule checks the app's systems, in order.
func AssertSchedule(t *testing.T, a *app.App, names ...string) {
	t.Helper()
	require.NotNil(t, a)
	require.Equal(t, names, a.Schedule().Names(), "unexpected schedule:\n%s", a.Schedule())
}
