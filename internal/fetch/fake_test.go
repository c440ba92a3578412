package fetch

import (
	"context"
	"errors"

	"github.com/hkanpak21/StellarAW/internal/expert"
)

// fakeExplorer scripts the explorer client per endpoint. Unscripted
// endpoints fail, which every fetcher must absorb.
type fakeExplorer struct {
	assetFn     func(param string) (*expert.AssetResponse, error)
	directoryFn func(address string) (*expert.DirectoryResponse, error)
	pageFn      func(param string) ([]byte, error)

	assetCalls     int
	directoryCalls int
	pageCalls      int
}

var errNotScripted = errors.New("endpoint not scripted")

func (f *fakeExplorer) Asset(_ context.Context, param string) (*expert.AssetResponse, error) {
	f.assetCalls++
	if f.assetFn == nil {
		return nil, errNotScripted
	}
	return f.assetFn(param)
}

func (f *fakeExplorer) Directory(_ context.Context, address string) (*expert.DirectoryResponse, error) {
	f.directoryCalls++
	if f.directoryFn == nil {
		return nil, errNotScripted
	}
	return f.directoryFn(address)
}

func (f *fakeExplorer) AssetPage(_ context.Context, param string) ([]byte, error) {
	f.pageCalls++
	if f.pageFn == nil {
		return nil, errNotScripted
	}
	return f.pageFn(param)
}
