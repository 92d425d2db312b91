// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"mplace/core/": {
			"mplace/internal/", "mplace/pkg/", "mplace/cmd/",
		},
		"mplace/internal/store": {
			"mplace/internal/app", "mplace/internal/cli",
			"mplace/internal/writers", "mplace/internal/output", "mplace/cmd/",
		},
		"mplace/internal/writers": {
			"mplace/internal/app", "mplace/internal/cli",
			"mplace/internal/store", "mplace/cmd/",
		},
		"mplace/internal/output": {
			"mplace/internal/app", "mplace/internal/cli",
			"mplace/internal/writers", "mplace/internal/store", "mplace/cmd/",
		},
		"mplace/internal/pretty": {
			"mplace/internal/app", "mplace/internal/cli",
			"mplace/internal/writers", "mplace/internal/output", "mplace/cmd/",
		},
		"mplace/internal/cli": {
			"mplace/internal/app", "mplace/internal/writers", "mplace/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "mplace/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "mplace/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
