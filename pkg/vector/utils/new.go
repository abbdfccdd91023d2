// Package vectorutils constructs vector drivers from provider config.
package vectorutils

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/vector"
	"github.com/alignlab/simcor/pkg/vector/chroma"
	"github.com/alignlab/simcor/pkg/vector/sqlitevec"
)

type NewVectorDriverOpts struct {
	ProviderType string
	Target       string
	Dimensions   uint
	Logger       *zap.Logger
}

func NewVectorDriver(o *NewVectorDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case "sqlite":
		return sqlitevec.NewDriver(sqlitevec.Config{
			DBPath:     o.Target,
			Dimensions: o.Dimensions,
		}, o.Logger)
	case "chroma":
		return chroma.NewDriver(chroma.Config{
			URL: o.Target,
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}
