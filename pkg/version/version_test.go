package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, "rapidmcp version "+BuildVersion) {
		t.Errorf("String() = %q, want prefix %q", s, "rapidmcp version "+BuildVersion)
	}
	if !strings.Contains(s, GoVersion) {
		t.Errorf("String() = %q, missing Go version %q", s, GoVersion)
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	for _, key := range []string{"version", "commit", "build_date", "go_version"} {
		if _, ok := info[key]; !ok {
			t.Errorf("Info() missing key %q", key)
		}
	}
	if got := UserAgent(); got != "rapidmcp/"+BuildVersion {
		t.Errorf("UserAgent() = %q", got)
	}
}
