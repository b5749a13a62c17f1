package buildinfo

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v1.4.0"

	if Get().Version != "v1.4.0" {
		t.Errorf("Get().Version = %q", Get().Version)
	}
	if !strings.Contains(String(), "version: v1.4.0") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.4.0") {
		t.Errorf("Template() = %q", Template())
	}
}
