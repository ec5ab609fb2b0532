package fsutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megaspaz/pychmod/pkg/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    fs.FileMode
		expectError bool
	}{
		{
			name:     "default directory mode",
			input:    "0755",
			expected: 0o755,
		},
		{
			name:     "default file mode",
			input:    "0644",
			expected: 0o644,
		},
		{
			name:     "no permissions",
			input:    "0000",
			expected: 0,
		},
		{
			name:     "setuid bit",
			input:    "4755",
			expected: 0o755 | fs.ModeSetuid,
		},
		{
			name:     "setgid bit",
			input:    "2644",
			expected: 0o644 | fs.ModeSetgid,
		},
		{
			name:     "sticky bit",
			input:    "1777",
			expected: 0o777 | fs.ModeSticky,
		},
		{
			name:     "all bits",
			input:    "7777",
			expected: 0o777 | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky,
		},
		{
			name:        "too short",
			input:       "755",
			expectError: true,
		},
		{
			name:        "too long",
			input:       "07555",
			expectError: true,
		},
		{
			name:        "two digits",
			input:       "75",
			expectError: true,
		},
		{
			name:        "digit out of octal range",
			input:       "0758",
			expectError: true,
		},
		{
			name:        "not a number",
			input:       "rwxr",
			expectError: true,
		},
		{
			name:        "empty",
			input:       "",
			expectError: true,
		},
		{
			name:        "leading space",
			input:       " 755",
			expectError: true,
		},
		{
			name:        "signed",
			input:       "-755",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode.FileMode())
		})
	}
}

func TestModeString(t *testing.T) {
	for _, s := range []string{"0000", "0644", "0755", "1777", "2644", "4755", "7777"} {
		mode, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, s, mode.String())
	}
}

func TestMustParseMode(t *testing.T) {
	assert.Equal(t, fs.FileMode(0o644), MustParseMode("0644").FileMode())
	assert.Panics(t, func() { MustParseMode("75") })
}
