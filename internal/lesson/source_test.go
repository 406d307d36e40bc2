package lesson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/palabra/internal/glossary"
)

func TestReadXML(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		want      Source
		wantErr   bool
		wantErrIs error
	}{
		{
			name: "words at any depth",
			content: `<?xml version="1.0" encoding="UTF-8"?>
<dic>
  <l>
    <w><c>casa</c><d>house, home</d><t>{f} /ˈkasa/</t></w>
  </l>
  <w><c> perro </c><d>dog</d></w>
</dic>`,
			want: Source{
				Records: 2,
				Triples: []glossary.Triple{
					{Headword: "casa", Gloss: "house, home", Definition: "{f} /ˈkasa/"},
					{Headword: "perro", Gloss: "dog"},
				},
			},
		},
		{
			name: "word without headword is skipped",
			content: `<dic>
  <w><d>orphan</d></w>
  <w><c>  </c><d>blank</d></w>
  <w><c>gato</c></w>
</dic>`,
			want: Source{
				Records: 3,
				Triples: []glossary.Triple{{Headword: "gato"}},
			},
		},
		{
			name:    "latin-1 declared encoding",
			content: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><dic><w><c>ni\xf1o</c><d>child</d></w></dic>",
			want: Source{
				Records: 1,
				Triples: []glossary.Triple{{Headword: "niño", Gloss: "child"}},
			},
		},
		{
			name:    "empty root",
			content: `<dic/>`,
			want:    Source{},
		},
		{
			name:    "malformed document",
			content: `<dic><w><c>casa</c></dic>`,
			wantErr: true,
		},
		{
			name:      "no root element",
			content:   "not xml at all",
			wantErr:   true,
			wantErrIs: ErrNoRootElement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadXML(strings.NewReader(tt.content))
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadYAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Source
		wantErr bool
	}{
		{
			name: "title and words",
			content: `title: Animals
words:
  - headword: perro
    gloss: dog
  - headword: gato
    gloss: cat
    definition: "{m}"
  - headword: ""
    gloss: nothing
`,
			want: Source{
				Title:   "Animals",
				Records: 3,
				Triples: []glossary.Triple{
					{Headword: "perro", Gloss: "dog"},
					{Headword: "gato", Gloss: "cat", Definition: "{m}"},
				},
			},
		},
		{
			name:    "empty document",
			content: "",
			want:    Source{},
		},
		{
			name:    "invalid yaml",
			content: "words: [[[",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadYAML(strings.NewReader(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "1.XML")
	require.NoError(t, os.WriteFile(xmlPath, []byte(`<dic><w><c>casa</c><d>house</d></w></dic>`), 0644))
	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("casa"), 0644))

	got, err := ReadFile(xmlPath)
	require.NoError(t, err)
	assert.Equal(t, []glossary.Triple{{Headword: "casa", Gloss: "house"}}, got.Triples)

	_, err = ReadFile(txtPath)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadFile(filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
