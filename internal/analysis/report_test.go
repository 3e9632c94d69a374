package analysis

import (
	"bytes"
	"testing"
)

func TestSummary_WriteReport(t *testing.T) {
	cases := map[string]string{
		"numeric":     "category,value\nA,10\nB,20\n",
		"non-numeric": "name\nÅsa\nBjörn\n",
	}
	for name, in := range cases {
		var buf bytes.Buffer
		if err := Analyze(mustTable(t, in)).WriteReport(&buf); err != nil {
			t.Fatalf("%s: WriteReport failed: %v", name, err)
		}
		out := buf.Bytes()
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("%s: output is not a PDF: %q", name, out[:min(len(out), 16)])
		}
		if !bytes.Contains(out, []byte("%%EOF")) {
			t.Fatalf("%s: PDF has no trailer", name)
		}
	}
}
