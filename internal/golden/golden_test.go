package golden

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/convcc/lcc/internal/compiler"
)

func TestScenarios(t *testing.T) {
	data, err := os.ReadFile("testdata/scenarios.md")
	be.Err(t, err, nil)

	cases, err := Extract(string(data))
	be.Err(t, err, nil)
	be.True(t, len(cases) > 0)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			var diag bytes.Buffer
			res, err := compiler.Compile([]byte(tc.Source), &diag)
			be.Err(t, err, nil)

			if tc.ExpectErrorSubstring != "" {
				be.True(t, res.HasError)
				be.True(t, strings.Contains(diag.String(), tc.ExpectErrorSubstring))
				return
			}

			be.True(t, !res.HasError)

			if tc.ExpectTAC != "" {
				be.Equal(t, strings.Join(res.TAC.Code(), "\n"), tc.ExpectTAC)
			}
			if tc.ExpectSymtab != "" {
				var buf bytes.Buffer
				res.SymbolTable.Print(&buf)
				be.Equal(t, strings.TrimRight(buf.String(), "\n"), tc.ExpectSymtab)
			}
		})
	}
}
