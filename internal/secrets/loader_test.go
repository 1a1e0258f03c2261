package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "maps.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  from-file\n"), 0o600))
	emptyFile := filepath.Join(dir, "empty.key")
	require.NoError(t, os.WriteFile(emptyFile, []byte("\n"), 0o600))

	t.Setenv("HH_MATCHER_TEST_KEY", " from-env ")

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr string
	}{
		{name: "file wins", src: Source{File: keyFile, Value: "inline", Env: "HH_MATCHER_TEST_KEY"}, want: "from-file"},
		{name: "inline before env", src: Source{Value: " inline ", Env: "HH_MATCHER_TEST_KEY"}, want: "inline"},
		{name: "env", src: Source{Env: "HH_MATCHER_TEST_KEY"}, want: "from-env"},
		{name: "missing file", src: Source{Name: "maps key", File: filepath.Join(dir, "nope")}, wantErr: "reading maps key from file"},
		{name: "empty file", src: Source{File: emptyFile, Value: "inline"}, wantErr: "is empty"},
		{name: "unset env", src: Source{Name: "maps key", Env: "HH_MATCHER_UNSET_KEY"}, wantErr: "set HH_MATCHER_UNSET_KEY"},
		{name: "nothing", src: Source{}, wantErr: "secret is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
