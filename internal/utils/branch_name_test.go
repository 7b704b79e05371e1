package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeBranchName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name passes through", "feature", "feature"},
		{"surrounding space dropped", "  feature  ", "feature"},
		{"spaces replaced with hyphens", "my feature branch", "my-feature-branch"},
		{"special characters replaced", "feature!@#$%^&*()", "feature"},
		{"underscores preserved", "my_feature_branch", "my_feature_branch"},
		{"slashes preserved", "feature/my-branch", "feature/my-branch"},
		{"repeated slashes collapsed", "feature//my-branch", "feature/my-branch"},
		{"dots preserved", "release.v1.0", "release.v1.0"},
		{"double dots collapsed", "a..b", "a.b"},
		{"component may not start with a dot", "feature/.hidden", "feature/hidden"},
		{"trailing dots and slashes removed", "feature.../", "feature"},
		{"lock suffix removed", "feature.lock", "feature"},
		{"lock suffix removed inside the path", "foo.lock/bar", "foo/bar"},
		{"every component trimmed", "a/-b-/c.lock", "a/b/c"},
		{"component reduced to nothing is dropped", "team/--/fix", "team/fix"},
		{"leading hyphens trimmed", "---feature", "feature"},
		{"mixed invalid characters", "feat: add new feature!", "feat-add-new-feature"},
		{"mixed case preserved", "MyFeatureBranch", "MyFeatureBranch"},
		{"empty string returns empty", "", ""},
		{"only special chars returns empty", "!@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, SanitizeBranchName(tt.input))
		})
	}
}

func TestSanitizeBranchName_MaxLength(t *testing.T) {
	t.Parallel()

	result := SanitizeBranchName(strings.Repeat("a", MaxBranchNameByteLength+50))
	require.Len(t, result, MaxBranchNameByteLength)

	cut := SanitizeBranchName(strings.Repeat("a", MaxBranchNameByteLength-1) + "-" + strings.Repeat("b", 50))
	require.LessOrEqual(t, len(cut), MaxBranchNameByteLength)
	require.False(t, strings.HasSuffix(cut, "-"), "result should not end with hyphen")

	slashed := SanitizeBranchName(strings.Repeat("a", MaxBranchNameByteLength-2) + "/.lock/" + strings.Repeat("b", 10))
	require.LessOrEqual(t, len(slashed), MaxBranchNameByteLength)
	require.False(t, strings.HasSuffix(slashed, "/"), "result should not end with a slash")
}
