package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	defer func() { Version, Build, GitCommit = origVersion, origBuild, origCommit }()

	Version, Build, GitCommit = "1.2.3", "2026-08-27", "abc1234"
	assert.Equal(t, "1.2.3", GetVersion())
	assert.Equal(t, "1.2.3 (build: 2026-08-27, commit: abc1234)", GetFullVersion())
}
