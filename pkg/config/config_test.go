package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validToken = "a1B2c3D4e5F6g7H8i9J0k1L2m3N4o5P6q7R8s9T0"

// inTempDir moves the test into an empty working directory so Resolve
// never sees a stray config file.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))
}

func TestResolveFromFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *Config
		wantErr bool
	}{
		{
			"all fields overridden",
			`{"apiUrl":"https://orca.example.com","apiToken":"` + validToken + `","settings":{"timeout":45000,"retries":5},"tools":{"hunt":false}}`,
			&Config{APIURL: "https://orca.example.com", APIToken: validToken, Timeout: 45000, Retries: 5, HuntEnabled: false},
			false,
		},
		{
			"token only takes defaults",
			`{"apiToken":"` + validToken + `"}`,
			&Config{APIURL: DefaultAPIURL, APIToken: validToken, Timeout: DefaultTimeout, Retries: DefaultRetries, HuntEnabled: true},
			false,
		},
		{
			"hunt flag coerced from string",
			`{"apiToken":"` + validToken + `","tools":{"hunt":"false"}}`,
			&Config{APIURL: DefaultAPIURL, APIToken: validToken, Timeout: DefaultTimeout, Retries: DefaultRetries, HuntEnabled: false},
			false,
		},
		{
			"token too short",
			`{"apiToken":"` + validToken[:39] + `"}`,
			nil,
			true,
		},
		{
			"token too long",
			`{"apiToken":"` + validToken + `X"}`,
			nil,
			true,
		},
		{
			"token with non-alphanumeric character",
			`{"apiToken":"` + validToken[:39] + `!"}`,
			nil,
			true,
		},
		{
			"missing token",
			`{"apiUrl":"https://orca.example.com"}`,
			nil,
			true,
		},
		{
			"not valid json",
			`{this is not json`,
			nil,
			true,
		},
		{
			"zero timeout rejected",
			`{"apiToken":"` + validToken + `","settings":{"timeout":0}}`,
			nil,
			true,
		},
		{
			"negative retries rejected",
			`{"apiToken":"` + validToken + `","settings":{"retries":-1}}`,
			nil,
			true,
		},
		{
			"non-numeric timeout rejected",
			`{"apiToken":"` + validToken + `","settings":{"timeout":"soon"}}`,
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := inTempDir(t)
			writeConfigFile(t, dir, tt.content)

			got, err := Resolve()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotConfigured)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileWinsOverEnvironment(t *testing.T) {
	t.Run("valid file shadows environment", func(t *testing.T) {
		dir := inTempDir(t)
		t.Setenv("ORCA_API_TOKEN", validToken)
		t.Setenv("ORCA_API_URL", "https://env.example.com")
		writeConfigFile(t, dir, `{"apiToken":"`+validToken+`","apiUrl":"https://file.example.com"}`)

		cfg, err := Resolve()
		require.NoError(t, err)
		assert.Equal(t, "https://file.example.com", cfg.APIURL)
	})

	t.Run("invalid file never falls back to environment", func(t *testing.T) {
		dir := inTempDir(t)
		t.Setenv("ORCA_API_TOKEN", validToken)
		writeConfigFile(t, dir, `{broken`)

		_, err := Resolve()
		require.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestResolveFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    *Config
		wantErr bool
	}{
		{
			"missing token",
			map[string]string{},
			nil,
			true,
		},
		{
			"token only takes defaults",
			map[string]string{"ORCA_API_TOKEN": validToken},
			&Config{APIURL: DefaultAPIURL, APIToken: validToken, Timeout: DefaultTimeout, Retries: DefaultRetries, HuntEnabled: true},
			false,
		},
		{
			"all fields overridden",
			map[string]string{
				"ORCA_API_TOKEN":  validToken,
				"ORCA_API_URL":    "https://env.example.com",
				"ORCA_TIMEOUT":    "60000",
				"ORCA_RETRIES":    "1",
				"ORCA_TOOLS_HUNT": "false",
			},
			&Config{APIURL: "https://env.example.com", APIToken: validToken, Timeout: 60000, Retries: 1, HuntEnabled: false},
			false,
		},
		{
			"anything but false enables hunt",
			map[string]string{"ORCA_API_TOKEN": validToken, "ORCA_TOOLS_HUNT": "no"},
			&Config{APIURL: DefaultAPIURL, APIToken: validToken, Timeout: DefaultTimeout, Retries: DefaultRetries, HuntEnabled: true},
			false,
		},
		{
			"malformed token",
			map[string]string{"ORCA_API_TOKEN": "short"},
			nil,
			true,
		},
		{
			"non-numeric timeout",
			map[string]string{"ORCA_API_TOKEN": validToken, "ORCA_TIMEOUT": "soon"},
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Resolve()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotConfigured)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenValid(t *testing.T) {
	assert.True(t, tokenValid(validToken))
	assert.False(t, tokenValid(""))
	assert.False(t, tokenValid(validToken[:39]))
	assert.False(t, tokenValid(validToken+"9"))
	assert.False(t, tokenValid(validToken[:39]+"-"))
	assert.False(t, tokenValid(validToken[:39]+" "))
}
