// Package content assembles the readers compiled into this module into one
// registry and offers typed entry points for the content types it knows.
package content

import (
	"sync"

	"github.com/logicossoftware/go-xnb"
	"github.com/logicossoftware/go-xnb/texture"
)

var registry = sync.OnceValue(func() *xnb.Registry {
	readers := append(xnb.BuiltinReaders(), texture.Reader)
	return xnb.MustRegistry(readers...)
})

// Registry returns the registry of every reader in this module: the XNA
// framework primitives and the leaf content decoders.
func Registry() *xnb.Registry { return registry() }

func withRegistry(opts []xnb.ReadOption) []xnb.ReadOption {
	return append([]xnb.ReadOption{xnb.WithRegistry(Registry())}, opts...)
}

// ParseAny decodes a document of any registered content type.
func ParseAny(data []byte, opts ...xnb.ReadOption) (*xnb.Asset[*xnb.Object], error) {
	return xnb.DecodeAny(data, withRegistry(opts)...)
}

// ParseTexture2D decodes a document whose primary object is a Texture2D.
func ParseTexture2D(data []byte, opts ...xnb.ReadOption) (*xnb.Asset[*texture.Texture2D], error) {
	return xnb.DecodeObject(data, texture.Reader, withRegistry(opts)...)
}

// Inspect is xnb.Inspect against Registry().
func Inspect(data []byte, opts ...xnb.ReadOption) (*xnb.Info, error) {
	return xnb.Inspect(data, withRegistry(opts)...)
}
