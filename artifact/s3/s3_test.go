package s3

import (
	"github.com/hupe1980/elicitmesh/core"
)

var _ core.ArtifactStore = (*Store)(nil)
