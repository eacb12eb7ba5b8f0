package covid

import (
	"context"
	"io"
)

// Source abstracts where the raw CSV comes from (the OWID URL, a local file).
type Source interface {
	Name() string
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// Store is the contract the in-memory dataset holder must satisfy.
type Store interface {
	SaveDataset(ds *Dataset)
	Current() (*Dataset, error)
	History() []LoadInfo
}

// Observer is notified about loads. Implemented by the metrics package.
type Observer interface {
	ObserveLoad(info LoadInfo, err error)
}
