package frames

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var sharedZstdDecoder persistentZstdDecoder

// persistentZstdDecoder lazily creates one decoder and reuses it for every
// compressed frame file.
type persistentZstdDecoder struct {
	once sync.Once
	mu   sync.Mutex
	dec  *zstd.Decoder
	err  error
}

func (p *persistentZstdDecoder) use(fn func(*zstd.Decoder) error) error {
	p.once.Do(func() {
		p.dec, p.err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	})
	if p.err != nil {
		return p.err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return fn(p.dec)
}

func decompressZstd(data []byte) ([]byte, error) {
	var out bytes.Buffer

	if err := sharedZstdDecoder.use(func(dec *zstd.Decoder) error {
		if err := dec.Reset(bytes.NewReader(data)); err != nil {
			return err
		}
		_, err := out.ReadFrom(dec)
		return err
	}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
